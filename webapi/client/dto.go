package client

import (
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/money"
	clientsvc "github.com/amirasaad/opsledger/pkg/service/client"
	"github.com/google/uuid"
)

// ClientRequest represents the request body for creating or editing a client.
// Amounts are in display units.
type ClientRequest struct {
	LastName            string  `json:"lastName" validate:"required"`
	FirstName           string  `json:"firstName" validate:"required"`
	MiddleName          string  `json:"middleName"`
	Phone               string  `json:"phone"`
	Email               string  `json:"email" validate:"omitempty,email"`
	IIN                 string  `json:"iin" validate:"omitempty,numeric,len=12"`
	ConstructionAddress string  `json:"constructionAddress"`
	LivingAddress       string  `json:"livingAddress"`
	ObjectName          string  `json:"objectName"`
	ConstructionDays    int     `json:"constructionDays" validate:"min=0"`
	TotalAmount         float64 `json:"totalAmount" validate:"min=0"`
	Deposit             float64 `json:"deposit" validate:"min=0"`
	FirstPayment        float64 `json:"firstPayment" validate:"min=0"`
	SecondPayment       float64 `json:"secondPayment" validate:"min=0"`
	ThirdPayment        float64 `json:"thirdPayment" validate:"min=0"`
	FourthPayment       float64 `json:"fourthPayment" validate:"min=0"`
	Year                int     `json:"year" validate:"omitempty,min=2000,max=2100"`
	Status              string  `json:"status" validate:"omitempty,oneof=deposit building built"`
}

// StatusRequest changes the status of a client and its accounts.
type StatusRequest struct {
	Status     string `json:"status" validate:"required,oneof=deposit building built"`
	ClientName string `json:"clientName"`
}

// VisibilityRequest shows or hides a client and its accounts. Omitting isVisible toggles.
type VisibilityRequest struct {
	IsVisible  *bool  `json:"isVisible"`
	ClientName string `json:"clientName"`
}

// ClientResponse is the wire form of a client.
type ClientResponse struct {
	ID                  string    `json:"id"`
	ClientNumber        string    `json:"clientNumber"`
	FullName            string    `json:"fullName"`
	LastName            string    `json:"lastName"`
	FirstName           string    `json:"firstName"`
	MiddleName          string    `json:"middleName,omitempty"`
	Phone               string    `json:"phone,omitempty"`
	Email               string    `json:"email,omitempty"`
	IIN                 string    `json:"iin,omitempty"`
	ConstructionAddress string    `json:"constructionAddress,omitempty"`
	LivingAddress       string    `json:"livingAddress,omitempty"`
	ObjectName          string    `json:"objectName,omitempty"`
	ConstructionDays    int       `json:"constructionDays"`
	TotalAmount         float64   `json:"totalAmount"`
	Deposit             float64   `json:"deposit"`
	FirstPayment        float64   `json:"firstPayment"`
	SecondPayment       float64   `json:"secondPayment"`
	ThirdPayment        float64   `json:"thirdPayment"`
	FourthPayment       float64   `json:"fourthPayment"`
	Year                int       `json:"year"`
	Status              string    `json:"status"`
	IsVisible           bool      `json:"isVisible"`
	CreatedAt           time.Time `json:"createdAt"`
	DeadlineAt          time.Time `json:"deadlineAt"`
}

// CreateResponse describes a new client and the accounts created with it.
type CreateResponse struct {
	Client    ClientResponse `json:"client"`
	PersonID  string         `json:"personId"`
	ProjectID string         `json:"projectId"`
}

// SyncResponse lists the accounts a cascade touched.
type SyncResponse struct {
	ClientID    string   `json:"clientId"`
	CategoryIDs []string `json:"categoryIds"`
	Status      string   `json:"status"`
	IsVisible   bool     `json:"isVisible"`
}

// DeleteResponse lists what a deletion removed.
type DeleteResponse struct {
	ClientID            string   `json:"clientId"`
	CategoryIDs         []string `json:"categoryIds"`
	RemovedTransactions int      `json:"removedTransactions"`
}

// StageResponse is one installment of the payment schedule.
type StageResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Paid   bool   `json:"paid"`
}

// ProgressResponse summarizes the payment schedule.
type ProgressResponse struct {
	TotalPaid string          `json:"totalPaid"`
	Percent   float64         `json:"percent"`
	FullyPaid bool            `json:"fullyPaid"`
	Stages    []StageResponse `json:"stages"`
}

// FieldChange is the before and after value of one edited field.
type FieldChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ChangeResponse is one entry of a client's change history.
type ChangeResponse struct {
	ID        string                 `json:"id"`
	ClientID  string                 `json:"clientId"`
	Action    string                 `json:"action"`
	Changes   map[string]FieldChange `json:"changes,omitempty"`
	Operator  string                 `json:"operator"`
	Timestamp time.Time              `json:"timestamp"`
}

func (r ClientRequest) toDetails() (client.Details, error) {
	d := client.Details{
		LastName:            r.LastName,
		FirstName:           r.FirstName,
		MiddleName:          r.MiddleName,
		Phone:               r.Phone,
		Email:               r.Email,
		IIN:                 r.IIN,
		ConstructionAddress: r.ConstructionAddress,
		LivingAddress:       r.LivingAddress,
		ObjectName:          r.ObjectName,
		ConstructionDays:    r.ConstructionDays,
		Year:                r.Year,
		Status:              common.Status(r.Status),
	}
	amounts := []struct {
		src float64
		dst *money.Amount
	}{
		{r.TotalAmount, &d.TotalAmount},
		{r.Deposit, &d.Deposit},
		{r.FirstPayment, &d.FirstPayment},
		{r.SecondPayment, &d.SecondPayment},
		{r.ThirdPayment, &d.ThirdPayment},
		{r.FourthPayment, &d.FourthPayment},
	}
	for _, a := range amounts {
		v, err := money.FromFloat(a.src)
		if err != nil {
			return d, err
		}
		*a.dst = v
	}
	return d, nil
}

func toClientResponse(c *client.Client) ClientResponse {
	return ClientResponse{
		ID:                  c.ID.String(),
		ClientNumber:        c.ClientNumber,
		FullName:            c.FullName(),
		LastName:            c.LastName,
		FirstName:           c.FirstName,
		MiddleName:          c.MiddleName,
		Phone:               c.Phone,
		Email:               c.Email,
		IIN:                 c.IIN,
		ConstructionAddress: c.ConstructionAddress,
		LivingAddress:       c.LivingAddress,
		ObjectName:          c.ObjectName,
		ConstructionDays:    c.ConstructionDays,
		TotalAmount:         c.TotalAmount.Float64(),
		Deposit:             c.Deposit.Float64(),
		FirstPayment:        c.FirstPayment.Float64(),
		SecondPayment:       c.SecondPayment.Float64(),
		ThirdPayment:        c.ThirdPayment.Float64(),
		FourthPayment:       c.FourthPayment.Float64(),
		Year:                c.Year,
		Status:              string(c.Status),
		IsVisible:           c.IsVisible,
		CreatedAt:           c.CreatedAt,
		DeadlineAt:          c.DeadlineAt(),
	}
}

func toClientResponses(clients []*client.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out
}

func toCreateResponse(res *clientsvc.CreateResult) CreateResponse {
	return CreateResponse{
		Client:    toClientResponse(res.Client),
		PersonID:  res.Person.ID.String(),
		ProjectID: res.Project.ID.String(),
	}
}

func toSyncResponse(res *clientsvc.SyncResult) SyncResponse {
	return SyncResponse{
		ClientID:    res.ClientID.String(),
		CategoryIDs: idStrings(res.CategoryIDs),
		Status:      string(res.Status),
		IsVisible:   res.IsVisible,
	}
}

func toDeleteResponse(res *clientsvc.DeleteResult) DeleteResponse {
	return DeleteResponse{
		ClientID:            res.ClientID.String(),
		CategoryIDs:         idStrings(res.CategoryIDs),
		RemovedTransactions: len(res.Removed),
	}
}

func toProgressResponse(p client.Progress, codec money.Codec) ProgressResponse {
	stages := make([]StageResponse, 0, len(p.Stages))
	for _, st := range p.Stages {
		stages = append(stages, StageResponse{Name: st.Name, Amount: codec.Format(st.Amount), Paid: st.Paid})
	}
	return ProgressResponse{
		TotalPaid: codec.Format(p.TotalPaid),
		Percent:   p.Percent,
		FullyPaid: p.FullyPaid,
		Stages:    stages,
	}
}

func toChangeResponses(changes []*client.Change) []ChangeResponse {
	out := make([]ChangeResponse, 0, len(changes))
	for _, ch := range changes {
		fields := make(map[string]FieldChange, len(ch.Changes))
		for name, fc := range ch.Changes {
			fields[name] = FieldChange{From: fc.From, To: fc.To}
		}
		out = append(out, ChangeResponse{
			ID:        ch.ID.String(),
			ClientID:  ch.ClientID.String(),
			Action:    string(ch.Action),
			Changes:   fields,
			Operator:  ch.Operator,
			Timestamp: ch.Timestamp,
		})
	}
	return out
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
