package commands

import (
	"context"
	"fmt"

	"Saarthi/internal/attendance"
	"Saarthi/internal/config"
)

type attendanceCmd struct{}

func (attendanceCmd) Name() string { return "attendance" }
func (attendanceCmd) Description() string {
	return "How many lectures you can skip or must attend"
}
func (attendanceCmd) Usage() string { return "attendance <total> <attended> [required=75]" }

func (attendanceCmd) Run(_ context.Context, _ *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrUsage
	}
	required := "75"
	if len(args) == 3 {
		required = args[2]
	}
	res, ok := attendance.Parse(args[0], args[1], required)
	if !ok {
		return fmt.Errorf("invalid input: need total > 0, 0 <= attended <= total, 0 < required <= 100")
	}
	fmt.Fprintf(Out, "Current attendance: %.2f%%\n", res.CurrentPercent)
	fmt.Fprintf(Out, "Status: %s (%s)\n", res.Status, res.Status.Label())
	fmt.Fprintf(Out, "Can skip: %d\n", res.CanSkip)
	if res.Unreachable {
		fmt.Fprintln(Out, "Need to attend: requirement can no longer be met")
	} else {
		fmt.Fprintf(Out, "Need to attend: %d\n", res.NeedToAttend)
	}
	return nil
}

func init() { RegisterCmd(attendanceCmd{}) }
