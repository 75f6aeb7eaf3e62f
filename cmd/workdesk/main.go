package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/petasbytes/workdesk/internal/chat"
	"github.com/petasbytes/workdesk/internal/config"
	"github.com/petasbytes/workdesk/internal/provider"
	"github.com/petasbytes/workdesk/internal/runner"
	"github.com/petasbytes/workdesk/internal/store"
	"github.com/petasbytes/workdesk/internal/telemetry"
	"github.com/petasbytes/workdesk/memory"
	"github.com/petasbytes/workdesk/tools"
)

func main() {
	// Basic env check (SDK also reads API key)
	if os.Getenv("ANTHROPIC_API_KEY") == "" {
		fmt.Println("Missing ANTHROPIC_API_KEY; export it before running.")
		os.Exit(1)
	}

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Workplace store: seeded from file when configured, fixtures otherwise.
	seed := store.DefaultSeed()
	if cfg.SeedPath != "" {
		seed, err = store.LoadSeed(cfg.SeedPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "seed: %v\n", err)
			os.Exit(1)
		}
	}
	st := store.NewMemoryStore(seed)
	store.RegisterBuiltinPrompts(st)

	// Load prior conversation if it exists
	persisted, err := memory.LoadConversation(cfg.PersistPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load persisted conversation: %v\n", err)
	}
	history := memory.NewHistory(persisted)
	engine := chat.NewEngine(st, history)

	client := provider.NewAnthropicClient()
	r := runner.New(client, tools.Registry(st), cfg.TokenBudget)
	model := provider.Model(cfg.Model)

	// Set up graceful shutdown on Ctrl-C (SIGINT) / SIGTERM
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigch)
	go func() {
		<-sigch
		fmt.Println("\nExiting...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("Chat about your workplace (Ctrl-C to quit)")
	fmt.Printf("Commands: /%s\n", strings.Join(st.Prompts(), " /"))

	// stdin reader goroutine -> lines into channel
	inputCh := make(chan string)
	go func() {
		for scanner.Scan() {
			inputCh <- scanner.Text()
		}
		close(inputCh)
	}()

outer:
	for {
		fmt.Print("[94mYou[0m: ")
		var (
			user string
			ok   bool
		)
		select {
		case <-ctx.Done():
			break outer
		case user, ok = <-inputCh:
			if !ok {
				break outer
			}
		}

		turnCtx := telemetry.WithTurnID(ctx, telemetry.NewTurnID())
		telemetry.EmitQueryFeatures(turnCtx, user)

		if err := engine.ProcessQuery(turnCtx, user); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}

		conv := toParams(history.Messages())

		// Track assistant visible text to persist after the turn
		var lastAssistantText string
		for {
			msg, toolResults, err := r.RunOneStep(turnCtx, model, conv)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				break
			}
			conv = append(conv, msg.ToParam())
			// Collect assistant text blocks from this message
			for _, b := range msg.Content {
				if tb, ok := b.AsAny().(anthropic.TextBlock); ok {
					if tb.Text != "" {
						if lastAssistantText == "" {
							lastAssistantText = tb.Text
						} else {
							lastAssistantText += "\n" + tb.Text
						}
					}
				}
			}
			if len(toolResults) == 0 {
				break // done with assistant turn
			}
			// Provide tool results as a user message back to the model
			conv = append(conv, anthropic.NewUserMessage(toolResults...))
		}

		// Persist the text transcript (tool blocks stay transient)
		if strings.TrimSpace(lastAssistantText) != "" {
			history.Append(memory.Message{Role: memory.RoleAssistant, Text: lastAssistantText})
		}
		if err := memory.SaveConversation(cfg.PersistPath, history.Messages()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to save conversation: %v\n", err)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stdin read error: %v\n", err)
	}
}

// toParams converts the persisted transcript into SDK message params.
// Messages with empty content are skipped; the API rejects them.
func toParams(msgs []memory.Message) []anthropic.MessageParam {
	conv := make([]anthropic.MessageParam, 0, len(msgs))
	for _, m := range msgs {
		blocks := make([]anthropic.ContentBlockParamUnion, 0, len(m.Blocks)+1)
		if m.Text != "" {
			blocks = append(blocks, anthropic.NewTextBlock(m.Text))
		}
		for _, b := range m.Blocks {
			if b.Text != "" {
				blocks = append(blocks, anthropic.NewTextBlock(b.Text))
			}
		}
		if len(blocks) == 0 {
			continue
		}
		if m.Role == memory.RoleAssistant {
			conv = append(conv, anthropic.NewAssistantMessage(blocks...))
		} else {
			conv = append(conv, anthropic.NewUserMessage(blocks...))
		}
	}
	return conv
}
