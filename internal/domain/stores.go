package domain

import "context"

type NodeStore interface {
	Append(ctx context.Context, n *Node) error
	ListAll(ctx context.Context) ([]Node, error)
	GetByID(ctx context.Context, id string) (*Node, error)
}

type ContradictionStore interface {
	Append(ctx context.Context, c *Contradiction) error
	ListAll(ctx context.Context) ([]Contradiction, error)
}

type RunStore interface {
	Append(ctx context.Context, r *RunLog) error
	ListAll(ctx context.Context) ([]RunLog, error)
}
