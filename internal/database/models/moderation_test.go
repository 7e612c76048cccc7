package models

import (
	"testing"
	"time"

	"github.com/pintwise/pintwise/internal/database/types"
	"github.com/pintwise/pintwise/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
)

func TestMergePending(t *testing.T) {
	t.Parallel()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	reviews := []*types.Review{
		{ID: 1, CreatedAt: at(0)},
		{ID: 2, CreatedAt: at(5)},
		{ID: 3, CreatedAt: at(9)},
	}
	photos := []*types.Photo{
		{ID: 10, CreatedAt: at(5)},
		{ID: 11, CreatedAt: at(7)},
	}

	type ref struct {
		kind enum.EntityType
		id   int64
	}

	tests := []struct {
		name    string
		reviews []*types.Review
		photos  []*types.Photo
		limit   int
		want    []ref
	}{
		{
			name:    "interleaves oldest first with reviews winning ties",
			reviews: reviews,
			photos:  photos,
			limit:   10,
			want: []ref{
				{enum.EntityTypeReview, 1},
				{enum.EntityTypeReview, 2},
				{enum.EntityTypePhoto, 10},
				{enum.EntityTypePhoto, 11},
				{enum.EntityTypeReview, 3},
			},
		},
		{
			name:    "stops at the limit",
			reviews: reviews,
			photos:  photos,
			limit:   2,
			want:    []ref{{enum.EntityTypeReview, 1}, {enum.EntityTypeReview, 2}},
		},
		{
			name:   "photos only",
			photos: photos,
			limit:  10,
			want:   []ref{{enum.EntityTypePhoto, 10}, {enum.EntityTypePhoto, 11}},
		},
		{
			name:  "empty queue",
			limit: 10,
			want:  []ref{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := mergePending(tt.reviews, tt.photos, tt.limit)

			got := make([]ref, len(items))
			for i, item := range items {
				got[i] = ref{item.EntityType, item.ID}
				if item.EntityType == enum.EntityTypeReview {
					assert.NotNil(t, item.Review)
					assert.Nil(t, item.Photo)
				} else {
					assert.NotNil(t, item.Photo)
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
