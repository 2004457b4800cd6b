package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func (that *Console) println(a ...any) {
	fmt.Fprintln(that.out, a...)
}

// readLine - prints the prompt and reads one trimmed line. io.EOF means the input is exhausted.
func (that *Console) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fmt.Fprint(that.out, prompt)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSpace(that.in.Text()), nil
}

// askYesNo - accepts y or n in any case and asks again otherwise.
func (that *Console) askYesNo(ctx context.Context, question string) (bool, error) {
	for {
		answer, err := that.readLine(ctx, question+" (Y/N): ")
		if err != nil {
			return false, err
		}

		switch {
		case strings.EqualFold(answer, "y"):
			return true, nil
		case strings.EqualFold(answer, "n"):
			return false, nil
		}
	}
}

// askInt - asks until the answer is an integer accepted by valid.
func (that *Console) askInt(ctx context.Context, prompt, invalid string, valid func(int) bool) (int, error) {
	for {
		answer, err := that.readLine(ctx, prompt)
		if err != nil {
			return 0, err
		}

		n, err := strconv.Atoi(answer)
		if err == nil && valid(n) {
			return n, nil
		}

		that.println(invalid)
	}
}
