package subscription

import (
	"context"
	"time"

	"fitclub/internal/console"
	"fitclub/internal/member"
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
		Title: "Subscription Management",
		Items: []console.MenuItem{
			{Label: "View Plans", Action: h.ListPlans},
			{Label: "Create Subscription", Action: h.CreateSubscription},
			{Label: "View Subscription Details", Action: h.ShowSubscription},
			{Label: "View Member Subscriptions", Action: h.ListForMember},
			{Label: "View Active Subscription", Action: h.ShowActive},
			{Label: "Renew Subscription", Action: h.RenewSubscription},
			{Label: "Cancel Subscription", Action: h.CancelSubscription},
			{Label: "Delete Subscription", Action: h.DeleteSubscription},
		},
	}
}

func (h *Handler) ListPlans(_ context.Context) error {
	h.console.Header("Plans")
	for _, p := range Plans() {
		h.console.Printf("%s (%s): %.2f/month, %.2f/quarter, %.2f/year\n",
			p.Name, p.Type, p.Quote(FrequencyMonthly), p.Quote(FrequencyQuarterly), p.Quote(FrequencyAnnual))
		h.console.Printf("  %s\n", p.Description)
	}
	return nil
}

func (h *Handler) CreateSubscription(ctx context.Context) error {
	h.console.Header("Create Subscription")

	var req CreateSubscriptionRequest
	var err error
	if req.MemberID, err = h.console.Prompt("Member ID"); err != nil {
		return err
	}
	if req.PlanType, err = console.PromptParsed(h.console, "Plan (regular/premium/trial)", member.ParseMembershipType); err != nil {
		return err
	}
	if req.PaymentFrequency, err = console.PromptParsed(h.console, "Payment Frequency (monthly/quarterly/annual)", ParsePaymentFrequency); err != nil {
		return err
	}
	if req.StartDate, err = h.console.PromptDate("Start Date"); err != nil {
		return err
	}
	if req.EndDate, err = h.console.PromptOptionalDate("End Date"); err != nil {
		return err
	}
	if req.Amount, err = h.console.PromptOptionalFloat("Amount"); err != nil {
		return err
	}
	if req.PaymentMethod, err = h.console.Prompt("Payment Method"); err != nil {
		return err
	}
	if req.AutoRenew, err = h.console.PromptYesNo("Auto Renew", true); err != nil {
		return err
	}
	activate, err := h.console.PromptYesNo("Activate Now", false)
	if err != nil {
		return err
	}
	if activate {
		status := StatusActive
		req.Status = &status
	}

	sub, err := h.service.CreateSubscription(ctx, req)
	if err != nil {
		return err
	}

	h.console.Successf("Subscription created successfully! ID: %s (%.2f, %s)", sub.ID, sub.Amount, sub.Status)
	return nil
}

func (h *Handler) ShowSubscription(ctx context.Context) error {
	id, err := h.console.Prompt("Subscription ID")
	if err != nil {
		return err
	}

	sub, err := h.service.GetSubscription(ctx, id)
	if err != nil {
		return err
	}
	h.printSubscription(sub)
	return nil
}

func (h *Handler) ListForMember(ctx context.Context) error {
	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	subs, err := h.service.ListForMember(ctx, memberID)
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		h.console.Println("No subscriptions found.")
		return nil
	}

	h.console.Header("Member Subscriptions")
	for _, sub := range subs {
		h.console.Printf("%s: %s %s, %s to %s [%s]\n", sub.ID, sub.PlanType, sub.PaymentFrequency,
			formatDate(sub.StartDate), formatDate(sub.EndDate), sub.Status)
	}
	return nil
}

func (h *Handler) ShowActive(ctx context.Context) error {
	memberID, err := h.console.Prompt("Member ID")
	if err != nil {
		return err
	}

	sub, ok := h.service.ActiveForMember(ctx, memberID)
	if !ok {
		h.console.Println("Member has no active subscription.")
		return nil
	}
	h.printSubscription(sub)
	return nil
}

func (h *Handler) RenewSubscription(ctx context.Context) error {
	id, err := h.console.Prompt("Subscription ID")
	if err != nil {
		return err
	}
	end, err := h.console.PromptDate("New End Date")
	if err != nil {
		return err
	}

	sub, err := h.service.RenewSubscription(ctx, id, end)
	if err != nil {
		return err
	}

	h.console.Successf("Subscription %s renewed until %s.", id, formatDate(sub.EndDate))
	return nil
}

func (h *Handler) CancelSubscription(ctx context.Context) error {
	id, err := h.console.Prompt("Subscription ID")
	if err != nil {
		return err
	}

	if _, err := h.service.CancelSubscription(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Subscription %s cancelled.", id)
	return nil
}

func (h *Handler) DeleteSubscription(ctx context.Context) error {
	id, err := h.console.Prompt("Subscription ID to delete")
	if err != nil {
		return err
	}
	ok, err := h.console.PromptYesNo("Are you sure", false)
	if err != nil || !ok {
		return err
	}

	if err := h.service.DeleteSubscription(ctx, id); err != nil {
		return err
	}

	h.console.Successf("Subscription %s deleted.", id)
	return nil
}

func (h *Handler) printSubscription(sub *Subscription) {
	h.console.Header("Subscription " + sub.ID)
	h.console.Field("Member", sub.MemberID)
	h.console.Field("Plan", sub.PlanType)
	h.console.Field("Frequency", sub.PaymentFrequency)
	h.console.Field("Period", formatDate(sub.StartDate)+" to "+formatDate(sub.EndDate))
	h.console.Field("Amount", sub.Amount)
	h.console.Field("Status", sub.Status)
	h.console.Field("Payment Method", sub.PaymentMethod)
	h.console.Field("Auto Renew", sub.AutoRenew)
	if sub.NextPaymentDate != nil {
		h.console.Field("Next Payment", formatDate(*sub.NextPaymentDate))
	}
}

func formatDate(t time.Time) string {
	return t.Local().Format(console.DateLayout)
}
