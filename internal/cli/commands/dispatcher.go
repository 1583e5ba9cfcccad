package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"Saarthi/internal/config"
	"Saarthi/internal/service"
)

// Коды завершения CLI.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// Dispatch — единая точка запуска команд хранилища.
// Печатает справку и сообщения об ошибках, возвращает код завершения процесса.
func Dispatch(ctx context.Context, cfg *config.Config, args []string) int {
	// глобальный --help мог остаться в os.Args после разбора флагов
	for _, a := range os.Args[1:] {
		if a == "--help" || a == "-h" {
			fmt.Fprint(Out, FormatGlobalUsage())
			return exitOK
		}
	}

	if !flag.Parsed() {
		flag.Parse()
	}

	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	name := strings.ToLower(args[0])
	if name == "help" {
		return printHelp(args[1:])
	}

	c, ok := Get(name)
	if !ok {
		fmt.Fprintf(Out, "Unknown command: %s\n\n", name)
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitUsage
	}

	err := c.Run(ctx, cfg, args[1:])
	if err == nil {
		return exitOK
	}
	return reportError(name, c, err)
}

// printHelp обрабатывает "help [command]".
func printHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(Out, FormatGlobalUsage())
		return exitOK
	}
	if c, ok := Get(args[0]); ok {
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitOK
	}
	fmt.Fprintf(Out, "Unknown command: %s\n\n", args[0])
	fmt.Fprint(Out, FormatGlobalUsage())
	return exitUsage
}

// reportError переводит ошибку команды в сообщение пользователю и код завершения.
// Ошибки ввода (неверные аргументы, поля ресурса) дают exitUsage, остальные — exitError.
func reportError(name string, c Command, err error) int {
	var (
		verr    *service.ValidationError
		tooBig  *service.FileTooLargeError
		corrupt *service.DeserializationError
	)
	switch {
	case errors.Is(err, ErrUsage):
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitUsage
	case errors.As(err, &verr):
		fmt.Fprintf(Out, "%s: %s is invalid: %s\n", name, verr.Field, verr.Reason)
		fmt.Fprintf(Out, "Usage: %s\n", c.Usage())
		return exitUsage
	case errors.As(err, &tooBig):
		fmt.Fprintf(Out, "%s: %v\n", name, tooBig)
		return exitError
	case errors.Is(err, service.ErrQuotaExceeded):
		fmt.Fprintf(Out, "%s: vault is full, remove resources or raise -quota\n", name)
		Logger.Debugw("quota exceeded", "command", name, "err", err)
		return exitError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(Out, "%s: resource not found\n", name)
		return exitError
	case errors.As(err, &corrupt):
		fmt.Fprintf(Out, "%s: stored data is damaged (%s); run \"check\"\n", name, corrupt.Key)
		return exitError
	default:
		fmt.Fprintf(Out, "%s error: %v\n", name, err)
		return exitError
	}
}
