package ports

type TickJournal interface {
	Write(v any) error
}
