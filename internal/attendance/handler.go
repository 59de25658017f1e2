package attendance

import (
	"context"
	"fmt"
	"time"

	"fitclub/internal/common"
	"fitclub/internal/console"
)

type Handler struct {
	service Service
	console *console.Console
}

func NewHandler(service Service, c *console.Console) *Handler {
	return &Handler{
		service: service,
		console: c,
	}
}

func (h *Handler) Menu() console.Menu {
	return console.Menu{
		Title: "Attendance Management",
		Items: []console.MenuItem{
			{Label: "Check In Member", Action: h.CheckIn},
			{Label: "Check Out Member", Action: h.CheckOut},
			{Label: "View Active Visit", Action: h.ShowActive},
			{Label: "View Member Attendance", Action: h.ListForMember},
			{Label: "View Attendance by Date", Action: h.ListByDate},
			{Label: "View All Attendance", Action: h.ListAll},
		},
	}
}

func (h *Handler) CheckIn(ctx context.Context) error {
	h.console.Header("Check In Member")

	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}
	locationID, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}
	zone, err := h.console.PromptOptional("Zone ID")
	if err != nil {
		return err
	}

	r, err := h.service.CheckIn(ctx, memberID, locationID, common.StringPtr(zone))
	if err != nil {
		return err
	}

	h.console.Successf("Member checked in. Record ID: %s", r.ID)
	return nil
}

// CheckOut accepts a record ID, or a member ID whose active visit is closed.
func (h *Handler) CheckOut(ctx context.Context) error {
	id, err := h.console.Prompt("Record ID or Member ID")
	if err != nil {
		return err
	}

	if active, ok := h.service.GetActiveAttendance(ctx, id); ok {
		id = active.ID
	}

	r, err := h.service.CheckOut(ctx, id)
	if err != nil {
		return err
	}

	minutes, _ := r.Duration()
	h.console.Successf("Member checked out after %d minutes.", minutes)
	return nil
}

func (h *Handler) ShowActive(ctx context.Context) error {
	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	r, ok := h.service.GetActiveAttendance(ctx, memberID)
	if !ok {
		h.console.Println("Member is not checked in.")
		return nil
	}

	h.console.Header("Active Visit " + r.ID)
	h.console.Field("Location", r.LocationID)
	if r.ZoneID != nil {
		h.console.Field("Zone", *r.ZoneID)
	}
	h.console.Field("Checked In", formatTime(r.CheckInTime))
	return nil
}

func (h *Handler) ListForMember(ctx context.Context) error {
	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}
	from, to, err := h.promptRange()
	if err != nil {
		return err
	}

	records, err := h.service.ListForMember(ctx, memberID, from, to)
	if err != nil {
		return err
	}
	h.printList("Member Attendance", records)
	return nil
}

func (h *Handler) ListByDate(ctx context.Context) error {
	day, err := h.console.PromptDate("Date")
	if err != nil {
		return err
	}
	locationID, err := h.console.PromptOptional("Location ID")
	if err != nil {
		return err
	}

	records, err := h.service.ListByDate(ctx, day, locationID)
	if err != nil {
		return err
	}
	h.printList("Attendance on "+day.Local().Format(console.DateLayout), records)
	return nil
}

func (h *Handler) ListAll(ctx context.Context) error {
	from, to, err := h.promptRange()
	if err != nil {
		return err
	}

	records, err := h.service.ListAll(ctx, from, to)
	if err != nil {
		return err
	}
	h.printList("All Attendance", records)
	return nil
}

func (h *Handler) promptRange() (*time.Time, *time.Time, error) {
	from, err := h.console.PromptOptionalTime("From")
	if err != nil {
		return nil, nil, err
	}
	to, err := h.console.PromptOptionalTime("To")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (h *Handler) printList(title string, records []Record) {
	if len(records) == 0 {
		h.console.Println("No attendance records found.")
		return
	}

	h.console.Header(title)
	for _, r := range records {
		out := "still checked in"
		if minutes, ok := r.Duration(); ok {
			out = fmt.Sprintf("%s (%d min)", formatTime(*r.CheckOutTime), minutes)
		}
		h.console.Printf("%s: member %s at %s, in %s, out %s\n", r.ID, r.MemberID, r.LocationID, formatTime(r.CheckInTime), out)
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format(console.TimeLayout)
}
