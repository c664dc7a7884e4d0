package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// confirmIfExists asks the user for confirmation before letting a caller
// overwrite path, when it already exists. It returns true when the caller
// is clear to write.
func confirmIfExists(path, prompt string) (bool, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return true, nil
	}

	fmt.Print(prompt + " ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
