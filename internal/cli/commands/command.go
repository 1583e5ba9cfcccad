package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"Saarthi/internal/config"
)

// ErrUsage возвращает команда при неверных аргументах; диспетчер покажет Usage.
var ErrUsage = errors.New("usage")

// Command — подкоманда CLI.
type Command interface {
	// Name — имя команды, как его набирает пользователь, например "add".
	Name() string
	// Description — краткое описание для справки.
	Description() string
	// Usage — строка использования, например "remove <id>".
	Usage() string
	// Run выполняет команду с аргументами (без имени команды).
	Run(ctx context.Context, cfg *config.Config, args []string) error
}

// registry — доступные команды по имени.
var registry = map[string]Command{}

// Out — общий writer для вывода CLI. По умолчанию os.Stdout, но в тестах может переназначаться.
var Out io.Writer = os.Stdout

// Logger — логгер команд. По умолчанию ничего не пишет; main подставляет настоящий.
var Logger = zap.NewNop().Sugar()

// RegisterCmd добавляет команду в реестр. Вызывается из init() каждой команды.
func RegisterCmd(cmd Command) {
	registry[cmd.Name()] = cmd
}

// Get возвращает команду по имени.
func Get(name string) (Command, bool) {
	c, ok := registry[name]
	return c, ok
}

// List возвращает зарегистрированные команды, отсортированные по имени.
func List() []Command {
	list := make([]Command, 0, len(registry))
	for _, c := range registry {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list
}

// FormatGlobalUsage собирает текст справки по всем командам.
func FormatGlobalUsage() string {
	lines := []string{
		"Saarthi vault CLI",
		"",
		"Usage:",
		"  saarthi [-profile <name>] [-vault-db <dir>] <command> [args]",
		"",
		"Commands:",
	}
	for _, c := range List() {
		lines = append(lines, fmt.Sprintf("  %-52s %s", c.Usage(), c.Description()))
	}
	return strings.Join(lines, "\n") + "\n"
}
