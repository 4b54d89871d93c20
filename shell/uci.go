package shell

import (
	"bufio"
	"fmt"
	"os"

	"github.com/DeepReal-Chess/Gomoku-Engine-Version0/config"
)

// UCILoop reads protocol commands from stdin until quit or EOF.
func UCILoop(cfg *config.Config) {
	// we're using the shell for its helper structures/functions only.
	sc := NewShellController(cfg)
	sc.SetMode(UCIMode)
	defer sc.Cleanup()

	scanner := bufio.NewScanner(os.Stdin)
	for !sc.quitting {
		if !scanner.Scan() {
			break // Exit loop if input ends
		}
		command := scanner.Text()
		if command == "" {
			continue
		}
		resp, err := sc.ProcessCommand(command)
		if err != nil {
			errout(err)
			continue
		}
		if resp != "" {
			fmt.Println(resp)
		}
	}
}

func errout(err error) {
	fmt.Println("error", err.Error())
}
