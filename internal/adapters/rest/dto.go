package rest

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"eventdesk/internal/domain/entities"
	"eventdesk/internal/ports/input"
)

func decodeJSONStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// --- Requests ---

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

func (req *registerRequest) validate() map[string][]string {
	errs := map[string][]string{}
	if strings.TrimSpace(req.FirstName) == "" {
		errs["firstName"] = append(errs["firstName"], "is required")
	}
	if !validEmail(req.Email) {
		errs["email"] = append(errs["email"], "must be a valid email address")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req *registerRequest) toInput() input.RegisterInput {
	return input.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Notes:     req.Notes,
	}
}

// apiRegisterRequest is the authenticated variant: a single name field,
// split into first/last on the first space.
type apiRegisterRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Notes string `json:"notes"`
}

func (req *apiRegisterRequest) validate() map[string][]string {
	errs := map[string][]string{}
	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = append(errs["name"], "is required")
	}
	if !validEmail(req.Email) {
		errs["email"] = append(errs["email"], "must be a valid email address")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req *apiRegisterRequest) toInput() input.RegisterInput {
	first, last := splitName(req.Name)
	return input.RegisterInput{
		Email:     req.Email,
		FirstName: first,
		LastName:  last,
		Notes:     req.Notes,
	}
}

func splitName(name string) (first, last string) {
	name = strings.TrimSpace(name)
	if i := strings.IndexByte(name, ' '); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1
}

type eventRequest struct {
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Mode            string    `json:"mode"`
	Location        string    `json:"location"`
	Capacity        *int      `json:"capacity"`
	WaitlistEnabled bool      `json:"waitlistEnabled"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
}

func (req *eventRequest) validate() map[string][]string {
	errs := map[string][]string{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = append(errs["title"], "is required")
	}
	if strings.TrimSpace(req.Slug) == "" {
		errs["slug"] = append(errs["slug"], "is required")
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		errs["startsAt"] = append(errs["startsAt"], "start and end times are required")
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req *eventRequest) toEntity() *entities.Event {
	return &entities.Event{
		Slug:            req.Slug,
		Title:           req.Title,
		Description:     req.Description,
		Mode:            req.Mode,
		Location:        req.Location,
		Capacity:        req.Capacity,
		WaitlistEnabled: req.WaitlistEnabled,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	}
}

type registrationUpdateRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

type webhookRequest struct {
	URL    string `json:"url"`
	Secret string `json:"secret"`
}

type eventStatusRequest struct {
	Status string `json:"status"`
}

// --- Responses ---

type registrationResponse struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"eventId"`
	Email       string    `json:"email"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	CancelToken string    `json:"cancelToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toRegistrationResponse(reg *entities.Registration, includeToken bool) registrationResponse {
	resp := registrationResponse{
		ID:        reg.ID,
		EventID:   reg.EventID,
		Email:     reg.Email,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Notes:     reg.Notes,
		Status:    reg.Status,
		CreatedAt: reg.CreatedAt,
	}
	if includeToken {
		resp.CancelToken = reg.CancelToken
	}
	return resp
}

type eventResponse struct {
	ID              uint      `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Mode            string    `json:"mode"`
	Location        string    `json:"location,omitempty"`
	Capacity        *int      `json:"capacity"`
	WaitlistEnabled bool      `json:"waitlistEnabled"`
	Status          string    `json:"status"`
	StartsAt        time.Time `json:"startsAt"`
	EndsAt          time.Time `json:"endsAt"`
}

func toEventResponse(event *entities.Event) eventResponse {
	return eventResponse{
		ID:              event.ID,
		Slug:            event.Slug,
		Title:           event.Title,
		Description:     event.Description,
		Mode:            event.Mode,
		Location:        event.Location,
		Capacity:        event.Capacity,
		WaitlistEnabled: event.WaitlistEnabled,
		Status:          event.Status,
		StartsAt:        event.StartsAt,
		EndsAt:          event.EndsAt,
	}
}

type webhookResponse struct {
	ID        uint      `json:"id"`
	URL       string    `json:"url"`
	Secret    string    `json:"secret,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type statusMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
