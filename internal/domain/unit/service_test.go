package unit

import (
	"context"
	"errors"
	"testing"
)

type fakeTask struct {
	ID         string
	UnitID     string
	AssigneeID *string
}

type fakeUnitRepo struct {
	units   map[string]*Unit
	members map[string]*UnitMember
	tasks   map[string]*fakeTask
}

func newFakeUnitRepo() *fakeUnitRepo {
	return &fakeUnitRepo{
		units:   make(map[string]*Unit),
		members: make(map[string]*UnitMember),
		tasks:   make(map[string]*fakeTask),
	}
}

func (r *fakeUnitRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeUnitRepo) CreateUnit(ctx context.Context, u *Unit) error {
	r.units[u.ID] = u
	return nil
}

func (r *fakeUnitRepo) GetUnit(ctx context.Context, unitID string) (*Unit, error) {
	found, ok := r.units[unitID]
	if !ok {
		return nil, ErrUnitNotFound
	}
	return found, nil
}

func (r *fakeUnitRepo) ListUnitsByUser(ctx context.Context, userID string) ([]UnitSummary, error) {
	var result []UnitSummary
	for _, member := range r.members {
		if member.UserID != userID {
			continue
		}
		if u, ok := r.units[member.UnitID]; ok {
			result = append(result, UnitSummary{Unit: *u})
		}
	}
	return result, nil
}

func (r *fakeUnitRepo) UpdateUnitName(ctx context.Context, unitID, name string) error {
	found, ok := r.units[unitID]
	if !ok {
		return ErrUnitNotFound
	}
	found.Name = name
	return nil
}

func (r *fakeUnitRepo) DeleteUnit(ctx context.Context, unitID string) error {
	delete(r.units, unitID)
	for id, member := range r.members {
		if member.UnitID == unitID {
			delete(r.members, id)
		}
	}
	for id, task := range r.tasks {
		if task.UnitID == unitID {
			delete(r.tasks, id)
		}
	}
	return nil
}

func (r *fakeUnitRepo) AddMember(ctx context.Context, member *UnitMember) error {
	r.members[member.ID] = member
	return nil
}

func (r *fakeUnitRepo) GetMember(ctx context.Context, unitID, userID string) (*UnitMember, error) {
	for _, member := range r.members {
		if member.UnitID == unitID && member.UserID == userID {
			return member, nil
		}
	}
	return nil, ErrMemberNotFound
}

func (r *fakeUnitRepo) GetMemberByID(ctx context.Context, memberID string) (*UnitMember, error) {
	found, ok := r.members[memberID]
	if !ok {
		return nil, ErrMemberNotFound
	}
	return found, nil
}

func (r *fakeUnitRepo) ListMembers(ctx context.Context, unitID string) ([]MemberWithUser, error) {
	var result []MemberWithUser
	for _, member := range r.members {
		if member.UnitID == unitID {
			result = append(result, MemberWithUser{Member: *member})
		}
	}
	return result, nil
}

func (r *fakeUnitRepo) CountActiveAdmins(ctx context.Context, unitID string) (int64, error) {
	var count int64
	for _, member := range r.members {
		if member.UnitID == unitID && member.IsActiveAdmin() {
			count++
		}
	}
	return count, nil
}

func (r *fakeUnitRepo) UpdateMemberRole(ctx context.Context, memberID, role string) error {
	found, ok := r.members[memberID]
	if !ok {
		return ErrMemberNotFound
	}
	found.Role = role
	return nil
}

func (r *fakeUnitRepo) UpdateMemberStatus(ctx context.Context, memberID, status string) error {
	found, ok := r.members[memberID]
	if !ok {
		return ErrMemberNotFound
	}
	found.Status = status
	return nil
}

func (r *fakeUnitRepo) DeleteMember(ctx context.Context, memberID string) error {
	delete(r.members, memberID)
	return nil
}

func (r *fakeUnitRepo) ListPendingInvitations(ctx context.Context, userID string) ([]Invitation, error) {
	var result []Invitation
	for _, member := range r.members {
		if member.UserID == userID && member.Status == StatusPending {
			invitation := Invitation{Member: *member}
			if u, ok := r.units[member.UnitID]; ok {
				invitation.Unit = *u
			}
			result = append(result, invitation)
		}
	}
	return result, nil
}

func (r *fakeUnitRepo) GetPendingInvitation(ctx context.Context, invitationID, userID string) (*UnitMember, error) {
	found, ok := r.members[invitationID]
	if !ok || found.UserID != userID || found.Status != StatusPending {
		return nil, ErrInvitationNotFound
	}
	return found, nil
}

func (r *fakeUnitRepo) ListRecentTasks(ctx context.Context, unitID string, limit int) ([]TaskSummary, error) {
	var result []TaskSummary
	for _, task := range r.tasks {
		if task.UnitID == unitID && len(result) < limit {
			result = append(result, TaskSummary{ID: task.ID, AssigneeID: task.AssigneeID})
		}
	}
	return result, nil
}

func (r *fakeUnitRepo) UnassignMemberTasks(ctx context.Context, unitID, userID string) error {
	for _, task := range r.tasks {
		if task.UnitID == unitID && task.AssigneeID != nil && *task.AssigneeID == userID {
			task.AssigneeID = nil
		}
	}
	return nil
}

type fakeDirectory struct {
	byEmail map[string]*UserSnapshot
}

func (d *fakeDirectory) GetByEmail(ctx context.Context, email string) (*UserSnapshot, error) {
	found, ok := d.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return found, nil
}

func (d *fakeDirectory) GetByID(ctx context.Context, id string) (*UserSnapshot, error) {
	for _, u := range d.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

type fakeNotifier struct {
	sent []string
}

func (n *fakeNotifier) InvitationCreated(ctx context.Context, email, unitName, inviterName string) {
	n.sent = append(n.sent, email)
}

func newTestService(repo *fakeUnitRepo) (*Service, *fakeNotifier) {
	directory := &fakeDirectory{byEmail: map[string]*UserSnapshot{
		"admin@example.com": {ID: "admin-user", Username: "admin", Email: "admin@example.com"},
		"bob@example.com":   {ID: "bob-user", Username: "bob", Email: "bob@example.com"},
		"carl@example.com":  {ID: "carl-user", Username: "carl", Email: "carl@example.com"},
	}}
	notifier := &fakeNotifier{}
	return NewService(repo, directory, notifier), notifier
}

func seedUnit(repo *fakeUnitRepo) *Unit {
	created := &Unit{ID: "unit-1", Name: "Home"}
	repo.units[created.ID] = created
	repo.members["m-admin"] = &UnitMember{ID: "m-admin", UnitID: "unit-1", UserID: "admin-user", Role: RoleAdmin, Status: StatusActive}
	return created
}

func TestCreateUnitCreatesActiveAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)

	created, err := svc.CreateUnit(context.Background(), "admin-user", "  Home  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.Name != "Home" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}

	var memberships []*UnitMember
	for _, member := range repo.members {
		if member.UnitID == created.ID {
			memberships = append(memberships, member)
		}
	}
	if len(memberships) != 1 {
		t.Fatalf("expected exactly one membership, got %d", len(memberships))
	}
	member := memberships[0]
	if member.UserID != "admin-user" || member.Role != RoleAdmin || member.Status != StatusActive {
		t.Fatalf("expected active admin membership for creator, got %+v", member)
	}
}

func TestCreateUnitEmptyName(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.CreateUnit(context.Background(), "admin-user", "   "); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestInviteMemberSuccess(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, notifier := newTestService(repo)
	seedUnit(repo)

	invited, err := svc.InviteMember(context.Background(), "unit-1", "admin-user", "Bob@Example.com", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if invited.UserID != "bob-user" || invited.Role != RoleMember || invited.Status != StatusPending {
		t.Fatalf("expected pending member invitation, got %+v", invited)
	}
	if len(notifier.sent) != 1 || notifier.sent[0] != "bob@example.com" {
		t.Fatalf("expected invitation notice to bob, got %v", notifier.sent)
	}
}

func TestInviteMemberRequiresAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, notifier := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}

	_, err := svc.InviteMember(context.Background(), "unit-1", "bob-user", "carl@example.com", "")
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
	if len(notifier.sent) != 0 {
		t.Fatalf("expected no notification, got %v", notifier.sent)
	}
	if _, err := repo.GetMember(context.Background(), "unit-1", "carl-user"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected no membership row created")
	}
}

func TestInviteMemberUnknownEmail(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)

	_, err := svc.InviteMember(context.Background(), "unit-1", "admin-user", "missing@example.com", "")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInviteMemberAlreadyMember(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusPending}

	_, err := svc.InviteMember(context.Background(), "unit-1", "admin-user", "bob@example.com", "")
	if !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestInviteMemberInvalidRole(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)

	_, err := svc.InviteMember(context.Background(), "unit-1", "admin-user", "bob@example.com", "owner")
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestRespondToInvitationAccept(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusPending}

	accepted, err := svc.RespondToInvitation(context.Background(), "m-bob", "bob-user", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if accepted.Status != StatusActive {
		t.Fatalf("expected active status, got %q", accepted.Status)
	}
	if repo.members["m-bob"].Status != StatusActive {
		t.Fatalf("expected stored status active, got %q", repo.members["m-bob"].Status)
	}
}

func TestRespondToInvitationReject(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusPending}

	if _, err := svc.RespondToInvitation(context.Background(), "m-bob", "bob-user", false); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.members["m-bob"]; ok {
		t.Fatalf("expected invitation row deleted")
	}
}

func TestRespondToInvitationWrongUser(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusPending}

	if _, err := svc.RespondToInvitation(context.Background(), "m-bob", "carl-user", true); !errors.Is(err, ErrInvitationNotFound) {
		t.Fatalf("expected ErrInvitationNotFound, got %v", err)
	}
}

func TestUpdateMemberRolePromote(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}

	updated, err := svc.UpdateMemberRole(context.Background(), "unit-1", "m-bob", RoleAdmin, "admin-user")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", updated.Role)
	}
}

func TestUpdateMemberRoleRequiresAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}

	_, err := svc.UpdateMemberRole(context.Background(), "unit-1", "m-bob", RoleAdmin, "bob-user")
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestUpdateMemberRoleInvalidRole(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)

	_, err := svc.UpdateMemberRole(context.Background(), "unit-1", "m-admin", "owner", "admin-user")
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestUpdateMemberRoleLastAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)

	_, err := svc.UpdateMemberRole(context.Background(), "unit-1", "m-admin", RoleMember, "admin-user")
	if !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if repo.members["m-admin"].Role != RoleAdmin {
		t.Fatalf("expected role unchanged, got %q", repo.members["m-admin"].Role)
	}
}

func TestUpdateMemberRoleDemoteWithSecondAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleAdmin, Status: StatusActive}

	updated, err := svc.UpdateMemberRole(context.Background(), "unit-1", "m-admin", RoleMember, "admin-user")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated.Role != RoleMember {
		t.Fatalf("expected member role, got %q", updated.Role)
	}
}

func TestUpdateMemberRolePendingAdminDoesNotCount(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	// A pending admin never accepted; it must not satisfy the quorum.
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleAdmin, Status: StatusPending}

	_, err := svc.UpdateMemberRole(context.Background(), "unit-1", "m-admin", RoleMember, "admin-user")
	if !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}

func TestRemoveMemberUnassignsTasks(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}
	bobID := "bob-user"
	repo.tasks["t-1"] = &fakeTask{ID: "t-1", UnitID: "unit-1", AssigneeID: &bobID}
	repo.tasks["t-2"] = &fakeTask{ID: "t-2", UnitID: "unit-1", AssigneeID: &bobID}

	if err := svc.RemoveMember(context.Background(), "unit-1", "m-bob", "admin-user"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := repo.members["m-bob"]; ok {
		t.Fatalf("expected membership deleted")
	}
	for id, task := range repo.tasks {
		if task.AssigneeID != nil {
			t.Fatalf("expected task %s unassigned, got %v", id, *task.AssigneeID)
		}
	}
}

func TestRemoveMemberSelf(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}

	if err := svc.RemoveMember(context.Background(), "unit-1", "m-bob", "bob-user"); err != nil {
		t.Fatalf("expected self-removal to succeed, got %v", err)
	}
}

func TestRemoveMemberForbiddenForOtherMembers(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}
	repo.members["m-carl"] = &UnitMember{ID: "m-carl", UnitID: "unit-1", UserID: "carl-user", Role: RoleMember, Status: StatusActive}

	err := svc.RemoveMember(context.Background(), "unit-1", "m-carl", "bob-user")
	if !errors.Is(err, ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestRemoveMemberLastAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)

	err := svc.RemoveMember(context.Background(), "unit-1", "m-admin", "admin-user")
	if !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	if _, ok := repo.members["m-admin"]; !ok {
		t.Fatalf("expected membership to survive")
	}
}

func TestSetMemberStatusBlock(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}
	bobID := "bob-user"
	repo.tasks["t-1"] = &fakeTask{ID: "t-1", UnitID: "unit-1", AssigneeID: &bobID}

	blocked, err := svc.SetMemberStatus(context.Background(), "unit-1", "m-bob", StatusBlocked, "admin-user")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if blocked.Status != StatusBlocked {
		t.Fatalf("expected blocked status, got %q", blocked.Status)
	}
	if repo.tasks["t-1"].AssigneeID != nil {
		t.Fatalf("expected blocked member's tasks unassigned")
	}
}

func TestSetMemberStatusBlockLastAdmin(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)

	_, err := svc.SetMemberStatus(context.Background(), "unit-1", "m-admin", StatusBlocked, "admin-user")
	if !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}

func TestSetMemberStatusPendingRejected(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusPending}

	_, err := svc.SetMemberStatus(context.Background(), "unit-1", "m-bob", StatusBlocked, "admin-user")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetMemberStatusUnblock(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusBlocked}

	restored, err := svc.SetMemberStatus(context.Background(), "unit-1", "m-bob", StatusActive, "admin-user")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if restored.Status != StatusActive {
		t.Fatalf("expected active status, got %q", restored.Status)
	}
}

func TestHasPermission(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusActive}
	repo.members["m-carl"] = &UnitMember{ID: "m-carl", UnitID: "unit-1", UserID: "carl-user", Role: RoleMember, Status: StatusPending}

	cases := []struct {
		name       string
		userID     string
		permission string
		want       bool
	}{
		{"admin manages members", "admin-user", PermManageMembers, true},
		{"admin creates tasks", "admin-user", PermCreateTasks, true},
		{"member creates tasks", "bob-user", PermCreateTasks, true},
		{"member cannot assign", "bob-user", PermAssignTasks, false},
		{"member cannot manage unit", "bob-user", PermManageUnit, false},
		{"pending member has nothing", "carl-user", PermCreateTasks, false},
		{"non-member has nothing", "stranger", PermCreateTasks, false},
	}
	for _, tc := range cases {
		got, err := svc.HasPermission(context.Background(), tc.userID, "unit-1", tc.permission)
		if err != nil {
			t.Fatalf("%s: expected no error, got %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestHasPermissionBlockedMember(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleAdmin, Status: StatusBlocked}

	got, err := svc.HasPermission(context.Background(), "bob-user", "unit-1", PermCreateTasks)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got {
		t.Fatalf("expected blocked member to have no permissions")
	}
}

func TestGetUnitRequiresActiveMembership(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	seedUnit(repo)
	repo.members["m-bob"] = &UnitMember{ID: "m-bob", UnitID: "unit-1", UserID: "bob-user", Role: RoleMember, Status: StatusPending}

	if _, err := svc.GetUnit(context.Background(), "unit-1", "stranger"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember for stranger, got %v", err)
	}
	if _, err := svc.GetUnit(context.Background(), "unit-1", "bob-user"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember for pending member, got %v", err)
	}
	if _, err := svc.GetUnit(context.Background(), "unit-1", "admin-user"); err != nil {
		t.Fatalf("expected no error for active member, got %v", err)
	}
}

// Full lifecycle: invite, accept, assign, remove.
func TestMembershipLifecycle(t *testing.T) {
	repo := newFakeUnitRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	created, err := svc.CreateUnit(ctx, "admin-user", "Home")
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}

	invited, err := svc.InviteMember(ctx, created.ID, "admin-user", "bob@example.com", "")
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if invited.Status != StatusPending {
		t.Fatalf("expected pending invitation, got %q", invited.Status)
	}

	if _, err := svc.RespondToInvitation(ctx, invited.ID, "bob-user", true); err != nil {
		t.Fatalf("accept: %v", err)
	}

	bobID := "bob-user"
	repo.tasks["t-1"] = &fakeTask{ID: "t-1", UnitID: created.ID, AssigneeID: &bobID}

	if err := svc.RemoveMember(ctx, created.ID, invited.ID, "admin-user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if repo.tasks["t-1"].AssigneeID != nil {
		t.Fatalf("expected task unassigned after removal")
	}
	if _, err := repo.GetMember(ctx, created.ID, "bob-user"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected membership row gone, got %v", err)
	}
}
