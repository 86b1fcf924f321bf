package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"github.com/tandem-agent/tandem/pkg/agent"
	"github.com/tandem-agent/tandem/pkg/tier"
	"github.com/tandem-agent/tandem/pkg/types"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	toolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tierStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("215"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// subscribeOutput renders agent events as they happen so the user can
// watch the exploration progress.
func subscribeOutput(a *agent.Agent) func() {
	return a.Events().Subscribe(func(ev types.AgentEvent) {
		switch ev.Type {
		case types.EventToolEnd:
			fmt.Println(toolStyle.Render("  [" + ev.ToolName + "] " + ev.Content))
		case types.EventTierSwitch:
			fmt.Println(tierStyle.Render("  ~ " + ev.Content))
		case types.EventCheckpoint:
			fmt.Println(toolStyle.Render("  checkpoint: " + ev.Content))
		case types.EventTurnAborted:
			if ev.Error != nil {
				fmt.Println(errorStyle.Render("  aborted: " + ev.Error.Error()))
			}
		}
	})
}

// runOnce executes a single task and prints the result.
func runOnce(ctx context.Context, a *agent.Agent, task string) error {
	unsubscribe := subscribeOutput(a)
	defer unsubscribe()

	result, err := a.RunTurn(ctx, task)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n", result.Text)
	if result.Aborted {
		fmt.Println(errorStyle.Render("turn stopped: " + result.AbortReason))
	}
	return nil
}

// runREPL is the interactive loop: read a line, run a turn, print the
// answer. Ctrl-C cancels the session.
func runREPL(ctx context.Context, a *agent.Agent) error {
	models := a.Models()
	fmt.Println(bannerStyle.Render("tandem") + fmt.Sprintf(" (light: %s, heavy: %s)", models[tier.Light], models[tier.Heavy]))
	fmt.Printf("Tools: %s\n", strings.Join(a.Registry().List(), ", "))
	fmt.Println("Commands: /q (quit), /c (clear), /help")
	fmt.Println()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		cancel()
	}()

	unsubscribe := subscribeOutput(a)
	defer unsubscribe()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		input, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		handled, output, quit := a.HandleCommand(input)
		if handled {
			if output != "" {
				fmt.Println(output)
			}
			if quit {
				return nil
			}
			continue
		}

		result, err := a.RunTurn(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Println(errorStyle.Render("Error: " + err.Error()))
			continue
		}
		if result.Text != "" {
			fmt.Printf("\n%s\n\n", result.Text)
		}
		if result.Aborted {
			fmt.Println(errorStyle.Render("turn stopped: " + result.AbortReason))
		}
	}
}
