package member

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
		Title: "Member Management",
		Items: []console.MenuItem{
			{Label: "View All Members", Action: h.ListMembers},
			{Label: "View Member Details", Action: h.ShowMember},
			{Label: "Add New Member", Action: h.CreateMember},
			{Label: "Update Member Information", Action: h.UpdateMember},
			{Label: "Update Health Information", Action: h.UpdateHealthInformation},
			{Label: "Deactivate Member", Action: h.DeactivateMember},
			{Label: "Activate Member", Action: h.ActivateMember},
			{Label: "Delete Member", Action: h.DeleteMember},
		},
	}
}

func (h *Handler) ListMembers(ctx context.Context) error {
	activeOnly, err := h.console.PromptYesNo("Active members only", true)
	if err != nil {
		return err
	}

	members, err := h.service.ListMembers(ctx, activeOnly)
	if err != nil {
		return err
	}
	if len(members) == 0 {
		h.console.Println("No members found.")
		return nil
	}

	h.console.Header("Member List")
	for _, m := range members {
		h.console.Printf("%s: %s [%s] (%s)\n", m.ID, m.FullName(), m.MembershipType, activeLabel(m.IsActive))
	}
	return nil
}

func (h *Handler) ShowMember(ctx context.Context) error {
	id, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	m, err := h.service.GetMember(ctx, id)
	if err != nil {
		return err
	}

	h.printMember(m)
	return nil
}

func (h *Handler) CreateMember(ctx context.Context) error {
	h.console.Header("Add New Member")

	var req CreateMemberRequest
	var err error
	if req.FirstName, err = h.console.Prompt("First Name"); err != nil {
		return err
	}
	if req.LastName, err = h.console.Prompt("Last Name"); err != nil {
		return err
	}
	if req.Email, err = h.console.Prompt("Email"); err != nil {
		return err
	}
	if req.Phone, err = h.console.Prompt("Phone"); err != nil {
		return err
	}
	if req.MembershipType, err = console.PromptParsed(h.console, "Membership Type (regular/premium/trial)", ParseMembershipType); err != nil {
		return err
	}
	if req.Address, err = console.PromptAddress(h.console); err != nil {
		return err
	}
	if req.HealthInfo, err = promptHealthInfo(h.console); err != nil {
		return err
	}
	home, err := h.console.PromptOptional("Home Location ID")
	if err != nil {
		return err
	}
	req.HomeLocationID = common.StringPtr(home)

	m, err := h.service.CreateMember(ctx, req)
	if err != nil {
		return err
	}

	h.console.Successf("New member added successfully! ID: %s", m.ID)
	return nil
}

func (h *Handler) UpdateMember(ctx context.Context) error {
	id, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}
	h.console.Println("Leave fields blank to retain current values.")

	var req UpdateMemberRequest
	for _, f := range []struct {
		label string
		dst   **string
	}{
		{"First Name", &req.FirstName},
		{"Last Name", &req.LastName},
		{"Email", &req.Email},
		{"Phone", &req.Phone},
		{"Home Location ID", &req.HomeLocationID},
	} {
		v, err := h.console.PromptOptional(f.label)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	if req.MembershipType, err = console.PromptOptionalParsed(h.console, "Membership Type (regular/premium/trial)", ParseMembershipType); err != nil {
		return err
	}

	changeAddress, err := h.console.PromptYesNo("Change address", false)
	if err != nil {
		return err
	}
	if changeAddress {
		addr, err := console.PromptAddress(h.console)
		if err != nil {
			return err
		}
		req.Address = &addr
	}

	m, err := h.service.UpdateMember(ctx, id, req)
	if err != nil {
		return err
	}

	h.console.Successf("Member updated successfully! Name: %s", m.FullName())
	return nil
}

func (h *Handler) UpdateHealthInformation(ctx context.Context) error {
	id, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	req, err := promptHealthInfo(h.console)
	if err != nil {
		return err
	}

	if _, err := h.service.UpdateHealthInformation(ctx, id, req); err != nil {
		return err
	}

	h.console.Successf("Health information updated for member %s.", id)
	return nil
}

func (h *Handler) DeactivateMember(ctx context.Context) error {
	id, err := h.console.Prompt("Member ID to deactivate")
	if err != nil {
		return err
	}

	if _, err := h.service.DeactivateMember(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Member ID %s deactivated.", id)
	return nil
}

func (h *Handler) ActivateMember(ctx context.Context) error {
	id, err := h.console.Prompt("Member ID to activate")
	if err != nil {
		return err
	}

	if _, err := h.service.ActivateMember(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Member ID %s activated.", id)
	return nil
}

func (h *Handler) DeleteMember(ctx context.Context) error {
	id, err := h.console.Prompt("Member ID to delete")
	if err != nil {
		return err
	}

	confirm, err := h.console.PromptYesNo("Delete this member permanently", false)
	if err != nil || !confirm {
		return err
	}

	if err := h.service.DeleteMember(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Member ID %s deleted.", id)
	return nil
}

func (h *Handler) printMember(m *Member) {
	h.console.Header(m.FullName())
	h.console.Field("ID", m.ID)
	h.console.Field("Email", m.Email)
	h.console.Field("Phone", m.Phone)
	h.console.Field("Address", m.Address)
	h.console.Field("Membership", m.MembershipType)
	h.console.Field("Home Location", orNone(common.Deref(m.HomeLocationID)))
	h.console.Field("Status", activeLabel(m.IsActive))

	hi := m.HealthInfo
	h.console.Field("Height (cm)", hi.Height)
	h.console.Field("Weight (kg)", hi.Weight)
	h.console.Field("Medical Conditions", orNone(strings.Join(hi.MedicalConditions, ", ")))
	h.console.Field("Emergency Contact", hi.EmergencyContactName+" "+hi.EmergencyContactPhone)
	if hi.LastHealthCheck != nil {
		h.console.Field("Last Health Check", hi.LastHealthCheck.Local().Format(console.DateLayout))
	}
	if hi.Notes != nil {
		h.console.Field("Notes", *hi.Notes)
	}
}

func promptHealthInfo(c *console.Console) (HealthInfoRequest, error) {
	var req HealthInfoRequest
	var err error
	if req.Height, err = c.PromptFloat("Height (cm)"); err != nil {
		return req, err
	}
	if req.Weight, err = c.PromptFloat("Weight (kg)"); err != nil {
		return req, err
	}
	if req.MedicalConditions, err = c.PromptList("Medical Conditions"); err != nil {
		return req, err
	}
	if req.EmergencyContactName, err = c.Prompt("Emergency Contact Name"); err != nil {
		return req, err
	}
	if req.EmergencyContactPhone, err = c.Prompt("Emergency Contact Phone"); err != nil {
		return req, err
	}
	if req.LastHealthCheck, err = c.PromptOptionalDate("Last Health Check"); err != nil {
		return req, err
	}
	notes, err := c.PromptOptional("Notes")
	if err != nil {
		return req, err
	}
	req.Notes = common.StringPtr(notes)
	return req, nil
}

func activeLabel(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
