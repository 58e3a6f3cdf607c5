package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/bnema/attendance-cli/internal/application"
	"github.com/bnema/attendance-cli/internal/domain"
)

// EventDispatcher is the slice of the application the intake needs.
type EventDispatcher interface {
	Dispatch(ctx context.Context, cmd application.EventCommand) (application.Outcome, error)
	ScheduleView() application.ScheduleView
}

type eventRequest struct {
	UserID      string `json:"user_id" validate:"required,max=64"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	Type        string `json:"type" validate:"required,oneof=login break logout_break logout break_start break_end"`
	// HasPriorLogin defaults to true when omitted.
	HasPriorLogin *bool              `json:"has_prior_login,omitempty"`
	SaleReport    *saleReportRequest `json:"sale_report,omitempty"`
}

type saleReportRequest struct {
	Items []saleItemRequest `json:"items" validate:"required,min=1,max=3,dive"`
}

type saleItemRequest struct {
	Name   string `json:"name" validate:"required,max=100"`
	Amount string `json:"amount" validate:"required,max=32"`
}

type shiftResponse struct {
	Key   string `json:"key"`
	Start string `json:"start"`
	End   string `json:"end"`
	Night bool   `json:"night"`
}

type saleItemResponse struct {
	Number int     `json:"number"`
	Name   string  `json:"name"`
	Gross  float64 `json:"gross"`
	Net    float64 `json:"net"`
}

type saleReportResponse struct {
	Items      []saleItemResponse `json:"items"`
	TotalGross float64            `json:"total_gross"`
	TotalNet   float64            `json:"total_net"`
}

type outcomeResponse struct {
	EventID       string              `json:"event_id"`
	UserID        string              `json:"user_id"`
	DisplayName   string              `json:"display_name"`
	Event         string              `json:"event"`
	At            string              `json:"at"`
	Team          string              `json:"team"`
	Shift         *shiftResponse      `json:"shift,omitempty"`
	Kind          string              `json:"kind"`
	Accepted      bool                `json:"accepted"`
	Annotation    string              `json:"annotation,omitempty"`
	OffsetMinutes int                 `json:"offset_minutes"`
	BreakMinutes  *int                `json:"break_minutes,omitempty"`
	SaleReport    *saleReportResponse `json:"sale_report,omitempty"`
	Recorded      bool                `json:"recorded"`
}

type scheduleRowResponse struct {
	Key     string   `json:"key"`
	Aliases []string `json:"aliases,omitempty"`
	Start   string   `json:"start"`
	End     string   `json:"end"`
	Team    string   `json:"team"`
	Night   bool     `json:"night"`
}

type scheduleResponse struct {
	Zone   string                `json:"zone"`
	Teams  []string              `json:"teams"`
	Shifts []scheduleRowResponse `json:"shifts"`
}

type handlers struct {
	dispatcher EventDispatcher
	netRate    float64
}

func (h handlers) postEvent(w http.ResponseWriter, r *http.Request) {
	req, err := decodeJSON[eventRequest](r)
	if err != nil {
		respondError(w, r, err)
		return
	}

	cmd, err := h.toCommand(req)
	if err != nil {
		respondError(w, r, err)
		return
	}

	outcome, err := h.dispatcher.Dispatch(r.Context(), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondOK(w, r, toOutcomeResponse(outcome))
}

func (h handlers) toCommand(req eventRequest) (application.EventCommand, error) {
	event, err := domain.ParseEventType(req.Type)
	if err != nil {
		return application.EventCommand{}, err
	}

	cmd := application.EventCommand{
		UserID:        domain.UserID(req.UserID),
		DisplayName:   req.DisplayName,
		Event:         event,
		HasPriorLogin: req.HasPriorLogin == nil || *req.HasPriorLogin,
	}

	if req.SaleReport != nil {
		names := make([]string, 0, len(req.SaleReport.Items))
		amounts := make([]string, 0, len(req.SaleReport.Items))
		for _, item := range req.SaleReport.Items {
			names = append(names, item.Name)
			amounts = append(amounts, item.Amount)
		}
		report, err := domain.NewSaleReport(len(names), names, amounts, h.netRate)
		if err != nil {
			return application.EventCommand{}, err
		}
		cmd.SaleReport = report
	}

	return cmd, nil
}

func (h handlers) getSchedule(w http.ResponseWriter, r *http.Request) {
	view := h.dispatcher.ScheduleView()

	resp := scheduleResponse{
		Zone:   view.Zone,
		Teams:  view.Teams,
		Shifts: make([]scheduleRowResponse, 0, len(view.Rows)),
	}
	for _, row := range view.Rows {
		resp.Shifts = append(resp.Shifts, scheduleRowResponse{
			Key:     row.Key,
			Aliases: row.Aliases,
			Start:   row.Start,
			End:     row.End,
			Team:    row.Team,
			Night:   row.Night,
		})
	}

	respondOK(w, r, resp)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]string{"status": "ok"})
}

func toOutcomeResponse(o application.Outcome) outcomeResponse {
	resp := outcomeResponse{
		EventID:       o.EventID,
		UserID:        string(o.UserID),
		DisplayName:   o.DisplayName,
		Event:         string(o.Event),
		At:            o.At.Format(time.RFC3339),
		Team:          o.Team,
		Kind:          string(o.Result.Kind),
		Accepted:      o.Result.Accepted(),
		Annotation:    o.Result.Annotation,
		OffsetMinutes: o.Result.OffsetMinutes,
		Recorded:      o.Recorded,
	}

	if o.Shift != nil {
		resp.Shift = &shiftResponse{
			Key:   o.MatchedKey,
			Start: o.Shift.Start.String(),
			End:   o.Shift.End.String(),
			Night: o.Shift.IsNightShift(),
		}
	}
	if o.BreakElapsed != nil {
		minutes := domain.ElapsedMinutes(*o.BreakElapsed)
		resp.BreakMinutes = &minutes
	}
	if !o.SaleReport.Empty() {
		sale := &saleReportResponse{TotalGross: o.SaleReport.TotalGross(), TotalNet: o.SaleReport.TotalNet()}
		for _, item := range o.SaleReport.Items {
			sale.Items = append(sale.Items, saleItemResponse{Number: item.Number, Name: item.Name, Gross: item.Gross, Net: item.Net})
		}
		resp.SaleReport = sale
	}

	return resp
}
