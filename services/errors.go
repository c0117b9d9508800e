package services

import (
	"errors"
	"fmt"
)

var (
	ErrWebsiteNotFound     = errors.New("website not found")
	ErrKeywordPlanNotFound = errors.New("keyword plan not found or not owned by website")
)

// PersistenceError marks a state-store failure mid-transition. Unlike
// provider or parse failures it aborts the remainder of a run, because
// nothing can be recorded without the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
