package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/player/api"
	"github.com/harshitpatel0000/Automatic-Quiz-Generator-web-version-Kuizottar/player/session"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	baseURL := getEnv("KUIZOTTAR_API", "http://localhost:5000")
	token := os.Getenv("KUIZOTTAR_TOKEN")
	logger := log.New(os.Stderr, "[Kuizottar] ", log.LstdFlags)

	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()
	client := api.NewClient(baseURL, token)

	if token == "" {
		username := prompt(reader, "Username: ")
		password := prompt(reader, "Password: ")
		if _, err := client.Login(ctx, username, password); err != nil {
			logger.Fatalf("login failed: %v", err)
		}
	}

	var code string
	if len(os.Args) > 1 {
		code = os.Args[1]
	} else {
		code = prompt(reader, "Quiz code: ")
	}

	sess := session.New(client, client, logger)
	if err := sess.Load(ctx, code); err != nil {
		logger.Fatalf("error loading quiz: %v", err)
	}

	fmt.Printf("\n%s\n", sess.Quiz().Title)
	fmt.Printf("%d questions, %d seconds each\n", len(sess.Quiz().Questions), sess.Quiz().TimePerQuestion)

	play(ctx, sess, reader)

	if result := sess.Result(); result != nil {
		fmt.Printf("\nAssessment complete. Final score: %s\n", result.ScoreString())
	}
}

// play runs the attempt. Timer ticks and user input are funneled into one
// loop so the two event sources never race on the session.
func play(ctx context.Context, sess *session.Session, reader *bufio.Reader) {
	input := make(chan string)
	go func() {
		defer close(input)
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				return
			}
			input <- strings.TrimSpace(line)
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	shown := -1
	for sess.State() == session.StateActive {
		if sess.CurrentIndex() != shown {
			shown = sess.CurrentIndex()
			printQuestion(sess)
		}

		select {
		case <-ticker.C:
			sess.Tick(ctx)
			if sess.State() == session.StateActive && sess.Remaining() <= 5 {
				fmt.Printf("  %ds left!\n", sess.Remaining())
			}
		case line, ok := <-input:
			if !ok {
				// Stdin closed: walk away, drop the timer.
				return
			}
			handleInput(ctx, sess, line)
		}
	}
}

func printQuestion(sess *session.Session) {
	q := sess.CurrentQuestion()
	if q == nil {
		return
	}
	fmt.Printf("\nQuestion %d/%d (%ds): %s\n", sess.CurrentIndex()+1, len(sess.Quiz().Questions), sess.Remaining(), q.Prompt)
	for i, opt := range q.Options {
		fmt.Printf("  %c) %s\n", 'A'+i, opt)
	}
	fmt.Println("Pick a letter, then press Enter on an empty line to confirm.")
}

func handleInput(ctx context.Context, sess *session.Session, line string) {
	q := sess.CurrentQuestion()
	if q == nil {
		return
	}

	if line == "" {
		sess.Confirm(ctx)
		return
	}

	letter := strings.ToUpper(line)
	if len(letter) == 1 {
		idx := int(letter[0] - 'A')
		if idx >= 0 && idx < len(q.Options) {
			if err := sess.Select(q.Options[idx]); err == nil {
				fmt.Printf("  selected: %s\n", q.Options[idx])
			}
			return
		}
	}
	fmt.Println("  unrecognized input")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
