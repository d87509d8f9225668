package mocks

//go:generate mockgen -destination=./mock_observer.go -package=mocks github.com/rxtech-lab/synthetic-data-lab/internal/config Observer
