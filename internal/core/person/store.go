// Copyright (c) 2026 VoxMundi. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import "context"

// Repository persists directory entries.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Person, int, error)
	FindByID(context context.Context, id string) (*Person, error)
	Create(context context.Context, person *Person) error
	Update(context context.Context, person *Person) error
	Delete(context context.Context, id string) error
}
