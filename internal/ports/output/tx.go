package output

import "context"

// TxManager runs fn inside one atomic unit of work. Repository calls made
// with the context passed to fn share the same transaction; fn returning
// an error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
