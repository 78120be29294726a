package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt reads a single line of input after printing the prompt.
// Returns the trimmed line; empty string if the user just hits enter.
func Prompt(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	os.Stdout.WriteString(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// PromptSecret reads a line without echoing it to the terminal.
// Used for credential entry.
func PromptSecret(prompt string) (string, error) {
	os.Stdout.WriteString(prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stdout)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// ConfirmYes prompts for a yes/no answer. Returns true only for "y"/"yes"
// (case-insensitive).
func ConfirmYes(prompt string) bool {
	input := strings.ToLower(Prompt(prompt))
	return input == "y" || input == "yes"
}
