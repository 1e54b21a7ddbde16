package services

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/referee-review/models"
	"github.com/Dosada05/referee-review/repositories"
	"github.com/Dosada05/referee-review/storage"
)

var errDB = errors.New("connection reset by peer")

// --- matches ---

type fakeMatchRepo struct {
	mu         sync.Mutex
	matches    map[int]*models.Match
	listErr    error
	updateErrs map[int]error
	updates    map[int]models.MatchStatus
}

func newFakeMatchRepo(matches ...models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{
		matches:    make(map[int]*models.Match),
		updateErrs: make(map[int]error),
		updates:    make(map[int]models.MatchStatus),
	}
	for i := range matches {
		m := matches[i]
		r.matches[m.ID] = &m
	}
	return r
}

func (r *fakeMatchRepo) sorted(keep func(*models.Match) bool) []models.Match {
	out := make([]models.Match, 0, len(r.matches))
	for _, m := range r.matches {
		if keep(m) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok {
		return nil, repositories.ErrMatchNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMatchRepo) ListByRound(_ context.Context, roundID int) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(m *models.Match) bool { return m.RoundID == roundID }), nil
}

func (r *fakeMatchRepo) ListByKickoffRange(_ context.Context, start, end time.Time) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(func(m *models.Match) bool {
		return m.KickoffTime != nil && !m.KickoffTime.Before(start) && m.KickoffTime.Before(end)
	}), nil
}

func (r *fakeMatchRepo) ListStatusCandidates(_ context.Context) ([]models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.sorted(func(m *models.Match) bool {
		return m.KickoffTime != nil && m.Status != models.MatchStatusCancelled
	}), nil
}

func (r *fakeMatchRepo) UpdateStatus(_ context.Context, id int, status models.MatchStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErrs[id]; err != nil {
		return err
	}
	m, ok := r.matches[id]
	if !ok {
		return repositories.ErrMatchNotFound
	}
	m.Status = status
	r.updates[id] = status
	return nil
}

// --- rounds ---

type focusCall struct {
	RoundID int
	IsFocus bool
}

type fakeRoundRepo struct {
	mu         sync.Mutex
	leagues    []repositories.LeagueRounds
	focus      map[int]bool
	updateErrs map[int]error
	calls      []focusCall
	listErr    error
}

func newFakeRoundRepo(leagues ...repositories.LeagueRounds) *fakeRoundRepo {
	r := &fakeRoundRepo{
		leagues:    leagues,
		focus:      make(map[int]bool),
		updateErrs: make(map[int]error),
	}
	for _, l := range leagues {
		for _, rk := range l.Rounds {
			r.focus[rk.Round.ID] = rk.Round.IsFocus
		}
	}
	return r
}

func (r *fakeRoundRepo) round(id int) (*models.Round, bool) {
	for _, l := range r.leagues {
		for _, rk := range l.Rounds {
			if rk.Round.ID == id {
				cp := rk.Round
				cp.IsFocus = r.focus[id]
				return &cp, true
			}
		}
	}
	return nil, false
}

func (r *fakeRoundRepo) GetByID(_ context.Context, id int) (*models.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	round, ok := r.round(id)
	if !ok {
		return nil, repositories.ErrRoundNotFound
	}
	return round, nil
}

func (r *fakeRoundRepo) ListByLeague(_ context.Context, leagueID int) ([]models.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Round
	for _, l := range r.leagues {
		if l.LeagueID != leagueID {
			continue
		}
		for _, rk := range l.Rounds {
			round, _ := r.round(rk.Round.ID)
			out = append(out, *round)
		}
	}
	return out, nil
}

func (r *fakeRoundRepo) GetFocusedByLeague(_ context.Context, leagueID int) (*models.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.leagues {
		if l.LeagueID != leagueID {
			continue
		}
		for _, rk := range l.Rounds {
			if r.focus[rk.Round.ID] {
				round, _ := r.round(rk.Round.ID)
				return round, nil
			}
		}
	}
	return nil, repositories.ErrRoundNotFound
}

func (r *fakeRoundRepo) ListLeagueRounds(_ context.Context) ([]repositories.LeagueRounds, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]repositories.LeagueRounds, len(r.leagues))
	for i, l := range r.leagues {
		rounds := make([]repositories.RoundKickoffs, len(l.Rounds))
		for j, rk := range l.Rounds {
			rounds[j] = rk
			rounds[j].Round.IsFocus = r.focus[rk.Round.ID]
		}
		out[i] = repositories.LeagueRounds{LeagueID: l.LeagueID, Rounds: rounds}
	}
	return out, nil
}

func (r *fakeRoundRepo) UpdateFocus(_ context.Context, id int, isFocus bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.updateErrs[id]; err != nil {
		return err
	}
	r.calls = append(r.calls, focusCall{RoundID: id, IsFocus: isFocus})
	r.focus[id] = isFocus
	return nil
}

func (r *fakeRoundRepo) focused() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for id, f := range r.focus {
		if f {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// --- publisher ---

type publishedEvent struct {
	Room    string
	Type    string
	Payload interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(room, messageType string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Room: room, Type: messageType, Payload: payload})
}

func (p *fakePublisher) rooms() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	rooms := make([]string, len(p.events))
	for i, e := range p.events {
		rooms[i] = e.Room
	}
	sort.Strings(rooms)
	return rooms
}

// --- users ---

type fakeUserRepo struct {
	mu     sync.Mutex
	users  []*models.User
	nextID int
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserEmailConflict
		}
		if u.Nickname == user.Nickname {
			return repositories.ErrUserNicknameConflict
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

// --- leagues ---

type fakeLeagueRepo struct {
	leagues []models.League
}

func (r *fakeLeagueRepo) GetByID(_ context.Context, id int) (*models.League, error) {
	for _, l := range r.leagues {
		if l.ID == id {
			cp := l
			return &cp, nil
		}
	}
	return nil, repositories.ErrLeagueNotFound
}

func (r *fakeLeagueRepo) List(_ context.Context, season *int) ([]models.League, error) {
	var out []models.League
	for _, l := range r.leagues {
		if season == nil || l.Season == *season {
			out = append(out, l)
		}
	}
	return out, nil
}

// --- referees and ratings ---

type fakeRefereeRepo struct {
	mu       sync.Mutex
	referees map[int]*models.Referee
}

func newFakeRefereeRepo(referees ...models.Referee) *fakeRefereeRepo {
	r := &fakeRefereeRepo{referees: make(map[int]*models.Referee)}
	for i := range referees {
		ref := referees[i]
		r.referees[ref.ID] = &ref
	}
	return r
}

func (r *fakeRefereeRepo) GetByID(_ context.Context, id int) (*models.Referee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.referees[id]
	if !ok {
		return nil, repositories.ErrRefereeNotFound
	}
	cp := *ref
	return &cp, nil
}

func (r *fakeRefereeRepo) List(_ context.Context) ([]models.Referee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Referee, 0, len(r.referees))
	for _, ref := range r.referees {
		out = append(out, *ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeRefereeRepo) UpdatePhotoKey(_ context.Context, id int, photoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ref, ok := r.referees[id]
	if !ok {
		return repositories.ErrRefereeNotFound
	}
	ref.PhotoKey = photoKey
	return nil
}

type fakeRatingRepo struct {
	ratings []models.RefereeRating
}

func (r *fakeRatingRepo) Create(_ context.Context, rating *models.RefereeRating) error {
	for _, existing := range r.ratings {
		if existing.UserID == rating.UserID && existing.MatchID == rating.MatchID && existing.RefereeID == rating.RefereeID {
			return repositories.ErrRatingConflict
		}
	}
	rating.ID = len(r.ratings) + 1
	r.ratings = append(r.ratings, *rating)
	return nil
}

// --- moments, comments, reports ---

type fakeMomentRepo struct {
	mu      sync.Mutex
	moments map[int]*models.Moment
	matches map[int]bool
}

func newFakeMomentRepo(matchIDs []int, moments ...models.Moment) *fakeMomentRepo {
	r := &fakeMomentRepo{moments: make(map[int]*models.Moment), matches: make(map[int]bool)}
	for _, id := range matchIDs {
		r.matches[id] = true
	}
	for i := range moments {
		m := moments[i]
		r.moments[m.ID] = &m
	}
	return r
}

func (r *fakeMomentRepo) Create(_ context.Context, moment *models.Moment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.matches[moment.MatchID] {
		return repositories.ErrMomentMatchInvalid
	}
	moment.ID = len(r.moments) + 100
	cp := *moment
	r.moments[moment.ID] = &cp
	return nil
}

func (r *fakeMomentRepo) GetByID(_ context.Context, id int) (*models.Moment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.moments[id]
	if !ok {
		return nil, repositories.ErrMomentNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMomentRepo) ListByMatch(_ context.Context, matchID int) ([]models.Moment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Moment
	for _, m := range r.moments {
		if m.MatchID == matchID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Minute < out[j].Minute })
	return out, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[int]*models.Comment
	moments  map[int]bool
	deleted  []int
}

func newFakeCommentRepo(momentIDs []int, comments ...models.Comment) *fakeCommentRepo {
	r := &fakeCommentRepo{comments: make(map[int]*models.Comment), moments: make(map[int]bool)}
	for _, id := range momentIDs {
		r.moments[id] = true
	}
	for i := range comments {
		c := comments[i]
		r.comments[c.ID] = &c
	}
	return r
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.moments[comment.MomentID] {
		return repositories.ErrCommentMomentInvalid
	}
	comment.ID = len(r.comments) + 500
	cp := *comment
	r.comments[comment.ID] = &cp
	return nil
}

func (r *fakeCommentRepo) GetByID(_ context.Context, id int) (*models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, repositories.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) ListByMoment(_ context.Context, momentID int) ([]models.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Comment
	for _, c := range r.comments {
		if c.MomentID == momentID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCommentRepo) CountByMoments(_ context.Context, momentIDs []int) (map[int]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[int]int)
	for _, id := range momentIDs {
		for _, c := range r.comments {
			if c.MomentID == id {
				counts[id]++
			}
		}
	}
	return counts, nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.comments[id]; !ok {
		return repositories.ErrCommentNotFound
	}
	delete(r.comments, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeReportRepo struct {
	reports []models.Report
}

func (r *fakeReportRepo) Create(_ context.Context, report *models.Report) error {
	for _, existing := range r.reports {
		if existing.CommentID == report.CommentID && existing.ReporterID == report.ReporterID && existing.Status == models.ReportStatusOpen {
			return repositories.ErrReportConflict
		}
	}
	report.ID = len(r.reports) + 1
	r.reports = append(r.reports, *report)
	return nil
}

func (r *fakeReportRepo) ListByStatus(_ context.Context, status models.ReportStatus) ([]models.Report, error) {
	var out []models.Report
	for _, rep := range r.reports {
		if rep.Status == status {
			out = append(out, rep)
		}
	}
	return out, nil
}

func (r *fakeReportRepo) UpdateStatus(_ context.Context, id int, status models.ReportStatus) error {
	for i := range r.reports {
		if r.reports[i].ID == id {
			r.reports[i].Status = status
			return nil
		}
	}
	return repositories.ErrReportNotFound
}

// --- uploads ---

type fakeUploader struct {
	uploaded map[string]string
	deleted  []string
	failWith error
}

var _ storage.FileUploader = (*fakeUploader)(nil)

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploaded: make(map[string]string)}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.failWith != nil {
		return nil, u.failWith
	}
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	u.uploaded[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
