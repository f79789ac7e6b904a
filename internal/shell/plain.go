package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// runPlain reads commands line by line from in until quit, end of input or
// cancellation of ctx. Command errors are printed and do not stop the loop.
func runPlain(ctx context.Context, session *Session, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "openphoto shell on %s, type help for the list of commands\n", session.Host())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		res, err := session.Execute(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		if res.Output != "" {
			fmt.Fprintln(out, res.Output)
		}
		if res.Quit {
			return nil
		}
	}
}
