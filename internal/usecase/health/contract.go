package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DatasetCounter reports how many postal codes are loaded.
type DatasetCounter interface {
	Count(ctx context.Context) (int, error)
}
