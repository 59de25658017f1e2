package appointment

import (
	"context"
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
		Title: "Appointment Management",
		Items: []console.MenuItem{
			{Label: "Schedule New Appointment", Action: h.CreateAppointment},
			{Label: "View Appointment Details", Action: h.ShowAppointment},
			{Label: "View Upcoming Appointments", Action: h.ListUpcoming},
			{Label: "View Appointments by Date", Action: h.ListByDate},
			{Label: "View Member History", Action: h.MemberHistory},
			{Label: "View Trainer Schedule", Action: h.TrainerSchedule},
			{Label: "Start Appointment", Action: h.StartAppointment},
			{Label: "Complete Appointment", Action: h.CompleteAppointment},
			{Label: "Cancel Appointment", Action: h.CancelAppointment},
			{Label: "Mark No-Show", Action: h.MarkNoShow},
			{Label: "Reschedule Appointment", Action: h.RescheduleAppointment},
			{Label: "Delete Appointment", Action: h.DeleteAppointment},
		},
	}
}

func (h *Handler) CreateAppointment(ctx context.Context) error {
	h.console.Header("Schedule New Appointment")

	var req CreateAppointmentRequest
	var err error
	if req.MemberID, err = h.console.Prompt("Member ID"); err != nil {
		return err
	}
	if req.TrainerID, err = h.console.Prompt("Trainer ID"); err != nil {
		return err
	}
	if req.LocationID, err = h.console.Prompt("Location ID"); err != nil {
		return err
	}
	zone, err := h.console.PromptOptional("Zone ID")
	if err != nil {
		return err
	}
	req.ZoneID = common.StringPtr(zone)
	if req.Type, err = console.PromptParsed(h.console, "Type (personal_training/group_class/consultation/assessment)", ParseType); err != nil {
		return err
	}
	if req.StartTime, err = h.console.PromptTime("Start Time"); err != nil {
		return err
	}
	if req.Duration, err = h.console.PromptInt("Duration (minutes)"); err != nil {
		return err
	}
	notes, err := h.console.PromptOptional("Notes")
	if err != nil {
		return err
	}
	req.Notes = common.StringPtr(notes)

	a, err := h.service.CreateAppointment(ctx, req)
	if err != nil {
		return err
	}

	h.console.Successf("Appointment scheduled successfully! ID: %s", a.ID)
	return nil
}

func (h *Handler) ShowAppointment(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID")
	if err != nil {
		return err
	}

	a, err := h.service.GetAppointment(ctx, id)
	if err != nil {
		return err
	}

	h.console.Header("Appointment " + a.ID)
	h.console.Field("Member", a.MemberID)
	h.console.Field("Trainer", a.TrainerID)
	h.console.Field("Location", a.LocationID)
	if a.ZoneID != nil {
		h.console.Field("Zone", *a.ZoneID)
	}
	h.console.Field("Type", a.Type)
	h.console.Field("Start", formatTime(a.StartTime))
	h.console.Field("End", formatTime(a.EndTime()))
	h.console.Field("Duration", a.Duration)
	h.console.Field("Status", a.Status)
	if a.Notes != nil {
		h.console.Field("Notes", *a.Notes)
	}
	return nil
}

func (h *Handler) ListUpcoming(ctx context.Context) error {
	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	appointments, err := h.service.ListUpcoming(ctx, memberID)
	if err != nil {
		return err
	}
	h.printList("Upcoming Appointments", appointments)
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

	appointments, err := h.service.ListByDate(ctx, day, locationID)
	if err != nil {
		return err
	}
	h.printList("Appointments on "+day.Local().Format(console.DateLayout), appointments)
	return nil
}

func (h *Handler) MemberHistory(ctx context.Context) error {
	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	appointments, err := h.service.MemberHistory(ctx, memberID)
	if err != nil {
		return err
	}
	h.printList("Appointment History", appointments)
	return nil
}

func (h *Handler) TrainerSchedule(ctx context.Context) error {
	trainerID, err := h.console.Prompt("Trainer ID")
	if err != nil {
		return err
	}
	day, err := h.console.PromptDate("Date")
	if err != nil {
		return err
	}

	appointments, err := h.service.TrainerSchedule(ctx, trainerID, day)
	if err != nil {
		return err
	}
	h.printList("Trainer Schedule", appointments)
	return nil
}

func (h *Handler) StartAppointment(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID")
	if err != nil {
		return err
	}

	if _, err := h.service.StartAppointment(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Appointment %s started.", id)
	return nil
}

func (h *Handler) CompleteAppointment(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID")
	if err != nil {
		return err
	}
	note, err := h.console.PromptOptional("Completion Note")
	if err != nil {
		return err
	}

	if _, err := h.service.CompleteAppointment(ctx, id, note); err != nil {
		return err
	}

	h.console.Successf("Appointment %s completed.", id)
	return nil
}

func (h *Handler) CancelAppointment(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID")
	if err != nil {
		return err
	}
	note, err := h.console.PromptOptional("Cancellation Note")
	if err != nil {
		return err
	}

	if _, err := h.service.CancelAppointment(ctx, id, note); err != nil {
		return err
	}

	h.console.Successf("Appointment %s cancelled.", id)
	return nil
}

func (h *Handler) MarkNoShow(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID")
	if err != nil {
		return err
	}

	if _, err := h.service.MarkNoShow(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Appointment %s marked as no-show.", id)
	return nil
}

func (h *Handler) RescheduleAppointment(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID")
	if err != nil {
		return err
	}
	start, err := h.console.PromptTime("New Start Time")
	if err != nil {
		return err
	}
	duration, err := h.console.PromptOptionalInt("New Duration (minutes)")
	if err != nil {
		return err
	}

	a, err := h.service.RescheduleAppointment(ctx, id, start, duration)
	if err != nil {
		return err
	}

	h.console.Successf("Appointment %s rescheduled to %s.", id, formatTime(a.StartTime))
	return nil
}

func (h *Handler) DeleteAppointment(ctx context.Context) error {
	id, err := h.console.Prompt("Appointment ID to delete")
	if err != nil {
		return err
	}

	if err := h.service.DeleteAppointment(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Appointment %s deleted.", id)
	return nil
}

func (h *Handler) printList(title string, appointments []Appointment) {
	if len(appointments) == 0 {
		h.console.Println("No appointments found.")
		return
	}

	h.console.Header(title)
	for _, a := range appointments {
		h.console.Printf("%s: %s at %s (%d min) [%s]\n", a.ID, a.Type, formatTime(a.StartTime), a.Duration, a.Status)
	}
}

func formatTime(t time.Time) string {
	return t.Local().Format(console.TimeLayout)
}
