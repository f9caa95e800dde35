// Command chat is a terminal chat client: it drives the controller and
// in-memory session store against a running zenochat server, with optional
// SQLite-backed chat history.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/zenochat/zenochat/internal/api"
	"github.com/zenochat/zenochat/internal/config"
	"github.com/zenochat/zenochat/internal/controller"
	"github.com/zenochat/zenochat/internal/history"
	"github.com/zenochat/zenochat/internal/session"
)

func main() {
	config.LoadClientConfig()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	store := session.NewStore()
	client := api.NewClient(config.AppConfig.ServerURL)
	ctrl := controller.New(store, client, logger)

	if config.AppConfig.HistoryDB != "" {
		hist, err := history.NewSQLiteStore(config.AppConfig.HistoryDB)
		if err != nil {
			logger.Fatal("failed to open history database",
				zap.String("path", config.AppConfig.HistoryDB), zap.Error(err))
		}
		defer hist.Close()

		persisted, err := hist.Load()
		if err != nil {
			logger.Fatal("failed to load chat history", zap.Error(err))
		}
		store.RestoreHistory(persisted)
		ctrl.WithHistory(hist)

		fmt.Printf("Restored %d archived chats from %s\n", len(persisted), config.AppConfig.HistoryDB)
	}

	fmt.Printf("Zenochat - connected to %s\n", config.AppConfig.ServerURL)
	fmt.Println("Type a message, or /help for commands.")

	repl(ctrl, store, client)
}

func repl(ctrl *controller.Controller, store *session.Store, client *api.Client) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "/") {
			if quit := runCommand(ctx, ctrl, store, client, line); quit {
				return
			}
			continue
		}

		if err := ctrl.Send(ctx, line, nil); err != nil {
			fmt.Printf("! %v\n", err)
			continue
		}

		msgs := store.Active().Messages
		if len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			fmt.Printf("assistant: %s\n", last.Text)
		}
	}
}

func runCommand(ctx context.Context, ctrl *controller.Controller, store *session.Store, client *api.Client, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		fmt.Println(`Commands:
  /new               start a new chat (archives the current one)
  /history           list archived chats
  /search <query>    search chat history
  /load <id>         switch to an archived chat
  /delete <id>       delete a chat
  /attach <path>     stage a file for the next message
  /export <path>     export the current chat as JSON
  /share             print the transcript as plain text
  /clear             clear the current chat
  /quit              exit`)

	case "/new":
		fresh := ctrl.StartNewChat()
		fmt.Printf("Started chat %s\n", fresh.ID)

	case "/history":
		printSessions(store.History())

	case "/search":
		printSessions(ctrl.SearchHistory(arg))

	case "/load":
		loaded, err := ctrl.LoadChat(arg)
		if err != nil {
			fmt.Printf("! %v\n", err)
			return false
		}
		fmt.Printf("Switched to %q (%d messages)\n", loaded.Title, len(loaded.Messages))
		for _, msg := range loaded.Messages {
			fmt.Printf("%s: %s\n", msg.Sender, msg.Text)
		}

	case "/delete":
		replacement := ctrl.DeleteChat(arg)
		fmt.Printf("Deleted. Active chat is now %s\n", replacement.ID)

	case "/attach":
		content, err := os.ReadFile(arg)
		if err != nil {
			fmt.Printf("! %v\n", err)
			return false
		}
		ctrl.StageFile(session.FileRef{
			Name:      arg,
			SizeBytes: int64(len(content)),
			Content:   content,
		})
		fmt.Printf("Staged %s (%d bytes)\n", arg, len(content))

	case "/export":
		blob, err := ctrl.ExportActive()
		if err != nil {
			fmt.Printf("! %v\n", err)
			return false
		}
		if err := os.WriteFile(arg, blob, 0o644); err != nil {
			fmt.Printf("! %v\n", err)
			return false
		}
		fmt.Printf("Exported to %s\n", arg)

	case "/share":
		fmt.Println(ctrl.ShareTranscript())

	case "/clear":
		activeID := store.Active().ID
		if _, err := client.Clear(ctx, activeID); err != nil {
			fmt.Printf("! %v\n", err)
			return false
		}
		replacement := ctrl.DeleteChat(activeID)
		fmt.Printf("Cleared. Active chat is now %s\n", replacement.ID)

	case "/quit", "/exit":
		ctrl.StartNewChat() // archive the current chat before leaving
		return true

	default:
		fmt.Printf("Unknown command %s, try /help\n", cmd)
	}
	return false
}

func printSessions(sessions []session.Session) {
	if len(sessions) == 0 {
		fmt.Println("No chats found.")
		return
	}
	for _, sess := range sessions {
		fmt.Printf("%s  %s (%d messages, last active %s)\n",
			sess.ID, sess.Title, len(sess.Messages),
			sess.LastActivityAt.Format("2006-01-02 15:04"))
	}
}
