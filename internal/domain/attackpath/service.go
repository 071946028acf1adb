package attackpath

import "context"

// Service defines the interface for attack path business logic
type Service interface {
	Create(ctx context.Context, p *AttackPath) (int64, error)
	GetByID(ctx context.Context, id int64) (*AttackPath, error)
	List(ctx context.Context, limit int) ([]*AttackPath, error)
}
