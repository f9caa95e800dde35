package controller

import "context"

// TranscriptEvent is one speech-recognition result. Final marks the last
// event of a dictation; Err reports a recognition failure.
type TranscriptEvent struct {
	Transcript string
	Final      bool
	Err        error
}

// Recognizer is an injected speech-capture capability. Start begins a
// single dictation and the returned channel is closed when it ends.
type Recognizer interface {
	Start(ctx context.Context) (<-chan TranscriptEvent, error)
}

// Dictate runs one dictation through the recognizer and places the final
// transcript into the pending input. The listening flag tracks the
// dictation in the UI state and is cleared on any outcome.
func (c *Controller) Dictate(ctx context.Context, rec Recognizer) (string, error) {
	events, err := rec.Start(ctx)
	if err != nil {
		return "", err
	}

	c.Apply(SetListening{Listening: true})
	defer c.Apply(SetListening{Listening: false})

	var transcript string
	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case ev, ok := <-events:
			if !ok {
				if transcript != "" {
					c.SetPendingInput(transcript)
				}
				return transcript, nil
			}
			if ev.Err != nil {
				return "", ev.Err
			}
			if ev.Final {
				transcript = ev.Transcript
			}
		}
	}
}
