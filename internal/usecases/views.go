package usecases

import (
	"context"

	"github.com/google/uuid"
	"timecard.backend/internal/domain/entities"
	"timecard.backend/internal/domain/repositories"
)

// viewBuilder joins assignments with the display fields of both parties
type viewBuilder struct {
	assignmentRepo repositories.AssignmentRepository
	userRepo       repositories.UserRepository
}

func toAssignmentUser(u *entities.CompleteUser, withGeopoint bool) *entities.AssignmentUser {
	if u == nil {
		return nil
	}
	au := &entities.AssignmentUser{
		ID:         u.ID,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
	}
	if withGeopoint {
		au.Geopoint = u.Geopoint
	}
	return au
}

func (b viewBuilder) usersByID(ctx context.Context, assignments []*entities.Assignment) (map[uuid.UUID]*entities.CompleteUser, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(assignments)*2)
	for _, a := range assignments {
		for _, id := range []uuid.UUID{a.EmployeeID, a.ClientID} {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	users, err := b.userRepo.GetCompleteByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]*entities.CompleteUser, len(users))
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (b viewBuilder) assignmentViews(ctx context.Context, assignments []*entities.Assignment, withGeopoint bool) ([]*entities.AssignmentView, error) {
	users, err := b.usersByID(ctx, assignments)
	if err != nil {
		return nil, err
	}
	views := make([]*entities.AssignmentView, 0, len(assignments))
	for _, a := range assignments {
		views = append(views, &entities.AssignmentView{
			ID:       a.ID,
			Client:   toAssignmentUser(users[a.ClientID], withGeopoint),
			Employee: toAssignmentUser(users[a.EmployeeID], withGeopoint),
		})
	}
	return views, nil
}

func (b viewBuilder) timecardViews(ctx context.Context, timecards []*entities.Timecard) ([]*entities.TimecardView, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0, len(timecards))
	for _, tc := range timecards {
		if _, ok := seen[tc.AssignmentID]; !ok {
			seen[tc.AssignmentID] = struct{}{}
			ids = append(ids, tc.AssignmentID)
		}
	}

	assignments, err := b.assignmentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	assignmentViews, err := b.assignmentViews(ctx, assignments, false)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*entities.AssignmentView, len(assignmentViews))
	for _, v := range assignmentViews {
		byID[v.ID] = v
	}

	views := make([]*entities.TimecardView, 0, len(timecards))
	for _, tc := range timecards {
		views = append(views, &entities.TimecardView{
			ID:          tc.ID,
			Assignment:  byID[tc.AssignmentID],
			StartedAt:   tc.StartedAt,
			EndedAt:     tc.EndedAt,
			CreatedAt:   tc.CreatedAt,
			IsActive:    tc.IsActive,
			EditedCount: tc.EditedCount,
		})
	}
	return views, nil
}

func assignmentIDs(assignments []*entities.Assignment) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
	}
	return ids
}
