package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"rag-chat-be/internal/bootstrap"
	"rag-chat-be/internal/config"
	"rag-chat-be/internal/service"
	"rag-chat-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Replays a list of questions through the full pipeline and records the
// answers with timings. Each question runs in a fresh session, so answers
// reflect the corpus alone, not conversation history.
func main() {
	file := flag.String("file", "", "text file with one question per line")
	out := flag.String("out", "evaluation_results.json", "output file for results")
	flag.Parse()

	if *file == "" {
		color.Red("Usage: evaluate -file <questions.txt> [-out results.json]")
		os.Exit(1)
	}

	questions, err := readQuestions(*file)
	if err != nil {
		color.Red("Failed to read questions: %v", err)
		os.Exit(1)
	}
	if len(questions) == 0 {
		color.Red("No questions found in %s", *file)
		os.Exit(1)
	}
	color.Cyan("Replaying %d question(s)", len(questions))

	cfg := config.Load()
	db, err := database.Connect(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)

	ctx := context.Background()
	if err := container.WarmUp(ctx); err != nil {
		color.Yellow("Keyword warmup failed, gate starts empty: %v", err)
	}

	results := runQuestions(ctx, container.ChatService, questions)

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode results: %v", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	color.Green("Wrote %d result(s) to %s", len(results), *out)
}

type evalResult struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	SessionId  string `json:"session_id"`
	DurationMs int64  `json:"duration_ms"`
	Error      string `json:"error,omitempty"`
}

func runQuestions(ctx context.Context, chat service.IChatService, questions []string) []evalResult {
	results := make([]evalResult, 0, len(questions))

	for i, question := range questions {
		sessionID := uuid.NewString()
		color.White("[%d/%d] %s", i+1, len(questions), question)

		start := time.Now()
		answer, err := chat.Respond(ctx, sessionID, question, nil)
		elapsed := time.Since(start)

		result := evalResult{
			Question:   question,
			Answer:     answer,
			SessionId:  sessionID,
			DurationMs: elapsed.Milliseconds(),
		}
		if err != nil {
			result.Error = err.Error()
			color.Red("  failed after %s: %v", elapsed.Round(time.Millisecond), err)
		} else {
			color.Green("  answered in %s", elapsed.Round(time.Millisecond))
		}
		results = append(results, result)
	}

	return results
}

// readQuestions loads one question per line, skipping blanks and lines
// starting with '#'.
func readQuestions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var questions []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, line)
	}
	return questions, scanner.Err()
}
