// internal/shell/run.go

package shell

import (
	"context"
	"fmt"
	"os"

	"github.com/c-bata/go-prompt"
	"golang.org/x/term"
)

// Run 啟動互動式提示，直到使用者輸入 exit、按下 Ctrl+C 或 ctx 結束。
// 離開前還原終端機狀態。
func Run(ctx context.Context, o *Operator) {
	fd := int(os.Stdin.Fd())
	initialState, err := term.GetState(fd)
	if err != nil {
		o.logger.Warn("failed to read terminal state", "error", err)
	}
	handleExit := func() {
		if initialState != nil {
			_ = term.Restore(fd, initialState)
		}
	}

	options := append(getStyleOptions(),
		prompt.OptionPrefix(">>> "),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(buf *prompt.Buffer) {
				fmt.Fprintln(o.out, "Exiting My Bank shell.")
				handleExit()
				os.Exit(0)
			},
		}),
		prompt.OptionAddKeyBind(prompt.KeyBind{
			Key: prompt.ControlD,
			Fn:  func(buf *prompt.Buffer) {},
		}),
	)
	p := prompt.New(
		o.Execute,
		o.Complete,
		options...,
	)

	promptExitCh := make(chan struct{})
	go func() {
		p.Run()
		close(promptExitCh)
	}()

	select {
	case <-ctx.Done():
	case <-o.Wait():
	case <-promptExitCh:
	}
	handleExit()
	fmt.Fprintln(o.out, "Exiting My Bank shell.")
}

func getStyleOptions() []prompt.Option {
	return []prompt.Option{
		prompt.OptionTitle("My Bank"),
		prompt.OptionPrefixTextColor(prompt.Yellow),
		prompt.OptionPreviewSuggestionTextColor(prompt.Cyan),

		prompt.OptionSuggestionTextColor(prompt.White),
		prompt.OptionSuggestionBGColor(prompt.DarkBlue),

		prompt.OptionDescriptionTextColor(prompt.Black),
		prompt.OptionDescriptionBGColor(prompt.Yellow),

		prompt.OptionSelectedSuggestionTextColor(prompt.Black),
		prompt.OptionSelectedSuggestionBGColor(prompt.Yellow),

		prompt.OptionSelectedDescriptionTextColor(prompt.White),
		prompt.OptionSelectedDescriptionBGColor(prompt.DarkBlue),

		prompt.OptionShowCompletionAtStart(),
	}
}
