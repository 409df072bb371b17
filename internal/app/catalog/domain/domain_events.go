package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// ProductCreatedEvent is emitted when a product is created.
type ProductCreatedEvent struct {
	ProductID string
	SellerID  string
	Name      string
	MRP       *Money
	CreatedAt time.Time
}

func (e *ProductCreatedEvent) EventType() string {
	return "product.created"
}

func (e *ProductCreatedEvent) AggregateID() string {
	return e.ProductID
}

// ProductDeletedEvent is emitted when a product is soft-deleted.
type ProductDeletedEvent struct {
	ProductID string
	DeletedAt time.Time
}

func (e *ProductDeletedEvent) EventType() string {
	return "product.deleted"
}

func (e *ProductDeletedEvent) AggregateID() string {
	return e.ProductID
}

// BundleCreatedEvent is emitted when a bundle is created.
type BundleCreatedEvent struct {
	BundleID  string
	SellerID  string
	Name      string
	MRP       *Money
	CreatedAt time.Time
}

func (e *BundleCreatedEvent) EventType() string {
	return "bundle.created"
}

func (e *BundleCreatedEvent) AggregateID() string {
	return e.BundleID
}

// BundleDeletedEvent is emitted when a bundle is soft-deleted.
type BundleDeletedEvent struct {
	BundleID  string
	DeletedAt time.Time
}

func (e *BundleDeletedEvent) EventType() string {
	return "bundle.deleted"
}

func (e *BundleDeletedEvent) AggregateID() string {
	return e.BundleID
}
