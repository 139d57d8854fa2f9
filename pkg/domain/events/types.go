package events

// EventTypes maps every event type name to a constructor used when decoding events
// from an external bus.
var EventTypes = map[string]func() Event{
	EventTypeTransactionsAppended: func() Event { return &TransactionsAppended{} },
	EventTypeTransactionsRemoved:  func() Event { return &TransactionsRemoved{} },
	EventTypeBalanceChanged:       func() Event { return &BalanceChanged{} },
	EventTypeCategoriesChanged:    func() Event { return &CategoriesChanged{} },
	EventTypeCategoriesRemoved:    func() Event { return &CategoriesRemoved{} },
	EventTypeNotification:         func() Event { return &Notification{} },
}
