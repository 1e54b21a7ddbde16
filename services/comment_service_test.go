package services

import (
	"context"
	"strings"
	"testing"

	"github.com/Dosada05/referee-review/embeds"
	"github.com/Dosada05/referee-review/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentFixtures() (CommentService, *fakeCommentRepo) {
	moments := newFakeMomentRepo([]int{1}, models.Moment{ID: 10, MatchID: 1, Title: "Penalty"})
	comments := newFakeCommentRepo([]int{10},
		models.Comment{ID: 1, MomentID: 10, UserID: 5, Body: "see https://youtu.be/dQw4w9WgXcQ now"},
	)
	return NewCommentService(comments, moments), comments
}

func TestCommentService_ListMomentComments(t *testing.T) {
	svc, _ := commentFixtures()

	comments, err := svc.ListMomentComments(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	segments := comments[0].Segments
	require.Len(t, segments, 3)
	assert.Equal(t, embeds.KindText, segments[0].Kind)
	assert.Equal(t, embeds.KindYouTube, segments[1].Kind)
	assert.Equal(t, "dQw4w9WgXcQ", segments[1].VideoID)
	assert.Equal(t, embeds.KindText, segments[2].Kind)

	_, err = svc.ListMomentComments(context.Background(), 404)
	assert.ErrorIs(t, err, ErrMomentNotFound)
}

func TestCommentService_CreateComment(t *testing.T) {
	svc, _ := commentFixtures()
	ctx := context.Background()

	_, err := svc.CreateComment(ctx, 5, 10, " \n\t ")
	assert.ErrorIs(t, err, ErrCommentBodyRequired)

	_, err = svc.CreateComment(ctx, 5, 10, strings.Repeat("é", maxCommentLength+1))
	assert.ErrorIs(t, err, ErrCommentBodyTooLong)

	_, err = svc.CreateComment(ctx, 5, 404, "hello")
	assert.ErrorIs(t, err, ErrMomentNotFound)

	comment, err := svc.CreateComment(ctx, 5, 10, strings.Repeat("é", maxCommentLength))
	require.NoError(t, err)
	require.Len(t, comment.Segments, 1)
	assert.Equal(t, embeds.KindText, comment.Segments[0].Kind)
}

func TestCommentService_DeleteComment(t *testing.T) {
	tests := []struct {
		name    string
		userID  int
		role    models.UserRole
		wantErr error
	}{
		{"author", 5, models.RoleUser, nil},
		{"admin", 9, models.RoleAdmin, nil},
		{"stranger", 9, models.RoleUser, ErrForbiddenOperation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := commentFixtures()
			err := svc.DeleteComment(context.Background(), tt.userID, tt.role, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.deleted)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{1}, repo.deleted)
		})
	}

	svc, _ := commentFixtures()
	assert.ErrorIs(t, svc.DeleteComment(context.Background(), 5, models.RoleUser, 404), ErrCommentNotFound)
}
