package repository

import (
	"time"

	"github.com/amirasaad/opsledger/pkg/domain/category"
	"github.com/amirasaad/opsledger/pkg/domain/client"
	"github.com/amirasaad/opsledger/pkg/domain/common"
	"github.com/amirasaad/opsledger/pkg/domain/history"
	"github.com/amirasaad/opsledger/pkg/money"
	"github.com/google/uuid"
)

// Category represents an account record in the database.
type Category struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ClientID     *uuid.UUID `gorm:"type:uuid;index"`
	Title        string     `gorm:"not null;index"`
	BalanceMinor int64      `gorm:"column:balance_minor;not null"`
	Icon         string     `gorm:"size:64"`
	Color        string     `gorm:"size:64"`
	Row          int        `gorm:"column:row_kind;not null;index"`
	Status       string     `gorm:"size:16"`
	IsVisible    bool       `gorm:"not null"`
	Version      int64      `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName specifies the table name for the Category model.
func (Category) TableName() string {
	return "categories"
}

// Transaction represents a history record in the database.
type Transaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID  uuid.UUID `gorm:"type:uuid;index"`
	CategoryID  string    `gorm:"size:64;not null;index:idx_transactions_category_date,priority:1"`
	FromUser    string
	ToUser      string
	AmountMinor int64  `gorm:"column:amount_minor;not null"`
	Description string `gorm:"not null"`
	Type        string `gorm:"size:16;not null"`
	Date        time.Time `gorm:"not null;index:idx_transactions_category_date,priority:2"`
}

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string {
	return "transactions"
}

// Client represents a client record in the database.
type Client struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientNumber        string    `gorm:"size:32;index"`
	LastName            string    `gorm:"not null"`
	FirstName           string    `gorm:"not null"`
	MiddleName          string
	Phone               string
	Email               string
	IIN                 string `gorm:"column:iin"`
	ConstructionAddress string
	LivingAddress       string
	ObjectName          string
	ConstructionDays    int
	TotalAmount         int64
	Deposit             int64
	FirstPayment        int64
	SecondPayment       int64
	ThirdPayment        int64
	FourthPayment       int64
	Year                int    `gorm:"index:idx_clients_status_year,priority:2"`
	Status              string `gorm:"size:16;not null;index:idx_clients_status_year,priority:1"`
	IsVisible           bool   `gorm:"not null"`
	CreatedAt           time.Time
}

// TableName specifies the table name for the Client model.
func (Client) TableName() string {
	return "clients"
}

// ClientChange represents a client history entry in the database.
type ClientChange struct {
	ID        uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	ClientID  uuid.UUID                     `gorm:"type:uuid;not null;index:idx_client_history_client_time,priority:1"`
	Action    string                        `gorm:"size:32;not null"`
	Changes   map[string]client.FieldChange `gorm:"serializer:json;not null"`
	Operator  string                        `gorm:"not null"`
	Timestamp time.Time                     `gorm:"not null;index:idx_client_history_client_time,priority:2"`
}

// TableName specifies the table name for the ClientChange model.
func (ClientChange) TableName() string {
	return "client_history"
}

func categoryFromDomain(c *category.Category) *Category {
	return &Category{
		ID:           c.ID,
		ClientID:     c.ClientID,
		Title:        c.Title,
		BalanceMinor: int64(c.Balance),
		Icon:         c.Icon,
		Color:        c.Color,
		Row:          int(c.Row),
		Status:       string(c.Status),
		IsVisible:    c.IsVisible,
		Version:      c.Version,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (m *Category) toDomain() *category.Category {
	return &category.Category{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Title:     m.Title,
		Balance:   money.Amount(m.BalanceMinor),
		Icon:      m.Icon,
		Color:     m.Color,
		Row:       category.Row(m.Row),
		Status:    common.Status(m.Status),
		IsVisible: m.IsVisible,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func transactionFromDomain(t *history.Transaction) *Transaction {
	return &Transaction{
		ID:          t.ID,
		TransferID:  t.TransferID,
		CategoryID:  t.CategoryID,
		FromUser:    t.FromUser,
		ToUser:      t.ToUser,
		AmountMinor: int64(t.Amount),
		Description: t.Description,
		Type:        string(t.Type),
		Date:        t.Date,
	}
}

func (m *Transaction) toDomain() *history.Transaction {
	return &history.Transaction{
		ID:          m.ID,
		TransferID:  m.TransferID,
		CategoryID:  m.CategoryID,
		FromUser:    m.FromUser,
		ToUser:      m.ToUser,
		Amount:      money.Amount(m.AmountMinor),
		Description: m.Description,
		Type:        history.Type(m.Type),
		Date:        m.Date,
	}
}

func clientFromDomain(c *client.Client) *Client {
	m := &Client{
		ID:           c.ID,
		ClientNumber: c.ClientNumber,
		IsVisible:    c.IsVisible,
		CreatedAt:    c.CreatedAt,
	}
	m.setDetails(c.Details)
	return m
}

func (m *Client) setDetails(d client.Details) {
	m.LastName = d.LastName
	m.FirstName = d.FirstName
	m.MiddleName = d.MiddleName
	m.Phone = d.Phone
	m.Email = d.Email
	m.IIN = d.IIN
	m.ConstructionAddress = d.ConstructionAddress
	m.LivingAddress = d.LivingAddress
	m.ObjectName = d.ObjectName
	m.ConstructionDays = d.ConstructionDays
	m.TotalAmount = int64(d.TotalAmount)
	m.Deposit = int64(d.Deposit)
	m.FirstPayment = int64(d.FirstPayment)
	m.SecondPayment = int64(d.SecondPayment)
	m.ThirdPayment = int64(d.ThirdPayment)
	m.FourthPayment = int64(d.FourthPayment)
	m.Year = d.Year
	m.Status = string(d.Status)
}

func (m *Client) toDomain() *client.Client {
	return &client.Client{
		Details: client.Details{
			LastName:            m.LastName,
			FirstName:           m.FirstName,
			MiddleName:          m.MiddleName,
			Phone:               m.Phone,
			Email:               m.Email,
			IIN:                 m.IIN,
			ConstructionAddress: m.ConstructionAddress,
			LivingAddress:       m.LivingAddress,
			ObjectName:          m.ObjectName,
			ConstructionDays:    m.ConstructionDays,
			TotalAmount:         money.Amount(m.TotalAmount),
			Deposit:             money.Amount(m.Deposit),
			FirstPayment:        money.Amount(m.FirstPayment),
			SecondPayment:       money.Amount(m.SecondPayment),
			ThirdPayment:        money.Amount(m.ThirdPayment),
			FourthPayment:       money.Amount(m.FourthPayment),
			Year:                m.Year,
			Status:              common.Status(m.Status),
		},
		ID:           m.ID,
		ClientNumber: m.ClientNumber,
		IsVisible:    m.IsVisible,
		CreatedAt:    m.CreatedAt,
	}
}

func clientChangeFromDomain(c *client.Change) *ClientChange {
	return &ClientChange{
		ID:        c.ID,
		ClientID:  c.ClientID,
		Action:    string(c.Action),
		Changes:   c.Changes,
		Operator:  c.Operator,
		Timestamp: c.Timestamp,
	}
}

func (m *ClientChange) toDomain() *client.Change {
	return &client.Change{
		ID:        m.ID,
		ClientID:  m.ClientID,
		Action:    client.Action(m.Action),
		Changes:   m.Changes,
		Operator:  m.Operator,
		Timestamp: m.Timestamp,
	}
}

// Models lists every persisted model, in creation order.
func Models() []any {
	return []any{&Client{}, &Category{}, &Transaction{}, &ClientChange{}}
}
