package location

import (
	"context"
	"strings"

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
		Title: "Location Management",
		Items: []console.MenuItem{
			{Label: "View All Locations", Action: h.ListLocations},
			{Label: "View Location Details", Action: h.ShowLocation},
			{Label: "Add New Location", Action: h.CreateLocation},
			{Label: "Update Location", Action: h.UpdateLocation},
			{Label: "Deactivate Location", Action: h.DeactivateLocation},
			{Label: "Add Workout Zone", Action: h.AddWorkoutZone},
			{Label: "Remove Workout Zone", Action: h.RemoveWorkoutZone},
			{Label: "Update Zone Schedule", Action: h.UpdateZoneSchedule},
			{Label: "Check Zone Availability", Action: h.CheckZoneAvailability},
			{Label: "Delete Location", Action: h.DeleteLocation},
		},
	}
}

func (h *Handler) ListLocations(ctx context.Context) error {
	activeOnly, err := h.console.PromptYesNo("Active locations only", true)
	if err != nil {
		return err
	}

	locations, err := h.service.ListLocations(ctx, activeOnly)
	if err != nil {
		return err
	}
	if len(locations) == 0 {
		h.console.Println("No locations found.")
		return nil
	}

	h.console.Header("Location List")
	for _, l := range locations {
		h.console.Printf("%s: %s, %s (%d zones)\n", l.ID, l.Name, l.Address.City, len(l.WorkoutZones))
	}
	return nil
}

func (h *Handler) ShowLocation(ctx context.Context) error {
	id, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}

	l, err := h.service.GetLocation(ctx, id)
	if err != nil {
		return err
	}

	h.console.Header(l.Name)
	h.console.Field("ID", l.ID)
	h.console.Field("Address", l.Address)
	h.console.Field("Manager", l.ManagerID)
	h.console.Field("Capacity", l.TotalCapacity)
	h.console.Field("Phone", l.ContactPhone)
	h.console.Field("Email", l.ContactEmail)
	h.console.Field("Amenities", strings.Join(l.Amenities, ", "))
	h.console.Field("Status", activeLabel(l.IsActive))
	for _, day := range weekdays {
		if span, ok := l.OpeningHours[day]; ok {
			h.console.Field("  "+day, span)
		}
	}

	if len(l.WorkoutZones) == 0 {
		h.console.Println("No workout zones.")
		return nil
	}
	h.console.Println("Workout zones:")
	for _, z := range l.WorkoutZones {
		h.console.Printf("- %s: %s [%s] capacity %d (%s)\n", z.ID, z.Name, z.Type, z.Capacity, activeLabel(z.IsActive))
		for _, day := range weekdays {
			if times, ok := z.Schedule[day]; ok {
				h.console.Printf("    %s: %s\n", day, strings.Join(times, ", "))
			}
		}
	}
	return nil
}

func (h *Handler) CreateLocation(ctx context.Context) error {
	h.console.Header("Add New Location")

	var req CreateLocationRequest
	var err error
	if req.Name, err = h.console.Prompt("Name"); err != nil {
		return err
	}
	if req.Address, err = console.PromptAddress(h.console); err != nil {
		return err
	}
	if req.ManagerID, err = h.console.Prompt("Manager ID"); err != nil {
		return err
	}
	if req.TotalCapacity, err = h.console.PromptInt("Total Capacity"); err != nil {
		return err
	}
	if req.ContactPhone, err = h.console.Prompt("Contact Phone"); err != nil {
		return err
	}
	if req.ContactEmail, err = h.console.Prompt("Contact Email"); err != nil {
		return err
	}
	if req.Amenities, err = h.console.PromptList("Amenities"); err != nil {
		return err
	}
	if req.OpeningHours, err = h.promptOpeningHours(); err != nil {
		return err
	}

	l, err := h.service.CreateLocation(ctx, req)
	if err != nil {
		return err
	}

	h.console.Successf("Location created successfully! ID: %s", l.ID)
	return nil
}

func (h *Handler) UpdateLocation(ctx context.Context) error {
	id, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}
	h.console.Println("Leave fields blank to retain current values.")

	var req UpdateLocationRequest
	for _, f := range []struct {
		label string
		dst   **string
	}{
		{"Name", &req.Name},
		{"Manager ID", &req.ManagerID},
		{"Contact Phone", &req.ContactPhone},
		{"Contact Email", &req.ContactEmail},
	} {
		v, err := h.console.PromptOptional(f.label)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	if req.TotalCapacity, err = h.console.PromptOptionalInt("Total Capacity"); err != nil {
		return err
	}
	if req.Amenities, err = h.console.PromptList("Amenities"); err != nil {
		return err
	}

	changeHours, err := h.console.PromptYesNo("Replace opening hours", false)
	if err != nil {
		return err
	}
	if changeHours {
		if req.OpeningHours, err = h.promptOpeningHours(); err != nil {
			return err
		}
		if req.OpeningHours == nil {
			req.OpeningHours = map[string]string{}
		}
	}

	l, err := h.service.UpdateLocation(ctx, id, req)
	if err != nil {
		return err
	}

	h.console.Successf("Location %s updated.", l.Name)
	return nil
}

func (h *Handler) DeactivateLocation(ctx context.Context) error {
	id, err := h.console.Prompt("Location ID to deactivate")
	if err != nil {
		return err
	}

	if _, err := h.service.DeactivateLocation(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Location ID %s deactivated.", id)
	return nil
}

func (h *Handler) DeleteLocation(ctx context.Context) error {
	id, err := h.console.Prompt("Location ID to delete")
	if err != nil {
		return err
	}

	confirm, err := h.console.PromptYesNo("Delete this location and all of its zones", false)
	if err != nil || !confirm {
		return err
	}

	if err := h.service.DeleteLocation(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Location ID %s deleted.", id)
	return nil
}

func (h *Handler) AddWorkoutZone(ctx context.Context) error {
	locationID, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}

	var req CreateZoneRequest
	if req.Name, err = h.console.Prompt("Zone Name"); err != nil {
		return err
	}
	if req.Type, err = h.console.Prompt("Zone Type"); err != nil {
		return err
	}
	if req.Capacity, err = h.console.PromptInt("Capacity"); err != nil {
		return err
	}
	if req.Equipment, err = h.console.PromptList("Equipment"); err != nil {
		return err
	}
	attendant, err := h.console.PromptOptional("Attendant ID")
	if err != nil {
		return err
	}
	req.AttendantID = common.StringPtr(attendant)
	description, err := h.console.PromptOptional("Description")
	if err != nil {
		return err
	}
	req.Description = common.StringPtr(description)

	zone, err := h.service.AddWorkoutZone(ctx, locationID, req)
	if err != nil {
		return err
	}

	h.console.Successf("Workout zone added successfully! ID: %s", zone.ID)
	return nil
}

func (h *Handler) RemoveWorkoutZone(ctx context.Context) error {
	locationID, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}
	zoneID, err := h.console.Prompt("Zone ID")
	if err != nil {
		return err
	}

	if err := h.service.RemoveWorkoutZone(ctx, locationID, zoneID); err != nil {
		return err
	}

	h.console.Successf("Workout zone %s removed.", zoneID)
	return nil
}

func (h *Handler) UpdateZoneSchedule(ctx context.Context) error {
	locationID, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}
	zoneID, err := h.console.Prompt("Zone ID")
	if err != nil {
		return err
	}
	day, err := console.PromptParsed(h.console, "Day", ParseDay)
	if err != nil {
		return err
	}
	times, err := h.console.PromptList("Class times (HH:MM)")
	if err != nil {
		return err
	}

	zone, err := h.service.UpdateZoneSchedule(ctx, locationID, zoneID, day, times)
	if err != nil {
		return err
	}

	h.console.Successf("Schedule for %s on %s: %s", zone.Name, day, strings.Join(zone.Schedule[day], ", "))
	return nil
}

func (h *Handler) CheckZoneAvailability(ctx context.Context) error {
	locationID, err := h.console.Prompt("Location ID")
	if err != nil {
		return err
	}
	zoneID, err := h.console.Prompt("Zone ID")
	if err != nil {
		return err
	}
	day, err := console.PromptParsed(h.console, "Day", ParseDay)
	if err != nil {
		return err
	}
	at, err := h.console.Prompt("Time (HH:MM)")
	if err != nil {
		return err
	}

	ok, err := h.service.IsZoneAvailable(ctx, locationID, zoneID, day, at)
	if err != nil {
		return err
	}

	if ok {
		h.console.Successf("Zone is available on %s at %s.", day, at)
	} else {
		h.console.Println("Zone is not available at that time.")
	}
	return nil
}

// promptOpeningHours reads day/hours pairs until a blank day is entered.
func (h *Handler) promptOpeningHours() (map[string]string, error) {
	var hours map[string]string
	for {
		raw, err := h.console.PromptOptional("Opening day (blank to finish)")
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return hours, nil
		}
		day, err := ParseDay(raw)
		if err != nil {
			h.console.Errorf("%v", err)
			continue
		}
		span, err := h.console.Prompt("Hours (HH:MM-HH:MM)")
		if err != nil {
			return nil, err
		}
		if hours == nil {
			hours = make(map[string]string)
		}
		hours[day] = span
	}
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
