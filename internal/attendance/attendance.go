// Package attendance считает, сколько занятий студент может пропустить или должен посетить.
package attendance

import (
	"math"
	"strconv"
	"strings"
)

// Status — оценка текущей посещаемости относительно требования.
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// Label возвращает короткое сообщение для статуса.
func (s Status) Label() string {
	switch s {
	case StatusSafe:
		return "You're safe!"
	case StatusWarning:
		return "Be careful!"
	default:
		return "Attendance too low!"
	}
}

// Result — рассчитанные величины.
type Result struct {
	CurrentPercent float64
	CanSkip        int
	NeedToAttend   int
	Unreachable    bool // a 100% requirement can no longer be met
	Status         Status
}

// Calc возвращает ok=false, если total <= 0, attended вне [0, total]
// или required вне (0, 100].
func Calc(total, attended, required int) (Result, bool) {
	if total <= 0 || attended < 0 || attended > total || required <= 0 || required > 100 {
		return Result{}, false
	}
	t, a, r := float64(total), float64(attended), float64(required)

	res := Result{CurrentPercent: 100 * a / t}
	res.CanSkip = int(math.Max(0, math.Floor((100*a-r*t)/r)))
	if res.CurrentPercent < r {
		if required == 100 {
			res.Unreachable = true
		} else {
			res.NeedToAttend = int(math.Ceil((r*t - 100*a) / (100 - r)))
		}
	}
	switch {
	case res.CurrentPercent >= r+10:
		res.Status = StatusSafe
	case res.CurrentPercent >= r:
		res.Status = StatusWarning
	default:
		res.Status = StatusDanger
	}
	return res, true
}

// Parse — Calc над сырым вводом формы. Любое нецелое значение даёт ok=false.
func Parse(total, attended, required string) (Result, bool) {
	t, err := strconv.Atoi(strings.TrimSpace(total))
	if err != nil {
		return Result{}, false
	}
	a, err := strconv.Atoi(strings.TrimSpace(attended))
	if err != nil {
		return Result{}, false
	}
	r, err := strconv.Atoi(strings.TrimSpace(required))
	if err != nil {
		return Result{}, false
	}
	return Calc(t, a, r)
}
