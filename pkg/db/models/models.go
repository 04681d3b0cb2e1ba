package models

// All lists every persisted model, in dependency order, for schema
// bootstrapping on SQLite.
func All() []any {
	return []any{
		&User{},
		&WeddingPackage{},
		&WeddingAddon{},
		&Venue{},
		&WeddingQuote{},
		&QuoteAddon{},
		&WeddingEvent{},
		&OutboxEvent{},
	}
}
