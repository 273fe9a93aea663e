package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/jumptools/airtime/internal/models"
	"github.com/jumptools/airtime/internal/physics"
)

var (
	_ list.Item = recordItem{}
	_ list.Item = userItem{}
)

// recordItem wraps [models.JumpRecord] to implement [list.Item].
type recordItem struct {
	record models.JumpRecord
}

func (i recordItem) FilterValue() string { return i.record.Note }
func (i recordItem) Title() string {
	return fmt.Sprintf("%.1f cm", i.record.HeightCm)
}
func (i recordItem) Description() string {
	desc := fmt.Sprintf("%s • flight %s",
		i.record.Date.Format("2006-01-02 15:04"),
		physics.FormatDuration(i.record.FlightTime))
	if i.record.Note != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.record.Note)
	}
	return desc
}

// userItem wraps [models.UserProfile] to implement [list.Item].
type userItem struct {
	user    models.UserProfile
	current bool
}

func (i userItem) FilterValue() string { return i.user.Name }
func (i userItem) Title() string {
	if i.current {
		return i.user.Name + " (current)"
	}
	return i.user.Name
}
func (i userItem) Description() string {
	return fmt.Sprintf("since %s", i.user.CreatedAt.Format("2006-01-02"))
}
