package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"client-portal-backend/internal/apperr"
	"client-portal-backend/internal/models"
)

func TestProjectCreate_InvitesUnknownClient(t *testing.T) {
	e := newEnv()

	project, err := e.projects.Create(e.admin, "Redesign", "c@x.com")

	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusHearing, project.Status)
	assert.False(t, project.IsPaymentPending)

	invited, err := e.store.InsertOrGetUserByEmail("c@x.com", "", models.RoleClient)
	require.NoError(t, err)
	assert.Equal(t, models.RoleClient, invited.Role)
	assert.Equal(t, invited.ID, project.ClientID)

	require.Len(t, e.notifier.projectCreated, 1)
	event := e.notifier.projectCreated[0]
	assert.Equal(t, "c@x.com", event.Email)
	assert.Equal(t, project.ID.String(), event.ProjectID)
	assert.Contains(t, event.InviteURL, project.ID.String())
}

func TestProjectCreate_ReusesExistingClient(t *testing.T) {
	e := newEnv()

	project, err := e.projects.Create(e.admin, "Second Site", e.client.Email)

	require.NoError(t, err)
	assert.Equal(t, e.client.ID, project.ClientID)
	// Admin + client from the env, nobody new.
	assert.Len(t, e.store.users, 2)
}

func TestProjectCreate_AdminOnly(t *testing.T) {
	e := newEnv()

	_, err := e.projects.Create(e.client, "Nope", "c@x.com")

	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	assert.Empty(t, e.notifier.projectCreated)
}

func TestProjectUpdateStatus_SkipsPhasesFreely(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	updated, err := e.projects.UpdateStatus(e.admin, project.ID, models.ProjectStatusDelivery)

	require.NoError(t, err)
	assert.Equal(t, models.ProjectStatusDelivery, updated.Status)
	require.Len(t, e.store.activities, 1)
	assert.Equal(t, models.ActionProjectStatusUpdated, e.store.activities[0].Action)
	assert.Equal(t, "Status changed to DELIVERY", e.store.activities[0].EntityName)
}

func TestProjectUpdateStatus_AdminOnly(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	_, err := e.projects.UpdateStatus(e.client, project.ID, models.ProjectStatusDesign)

	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestProjectUpdateStatus_InvalidValue(t *testing.T) {
	e := newEnv()
	project := e.store.addProject(e.client.ID, "Redesign")

	_, err := e.projects.UpdateStatus(e.admin, project.ID, models.ProjectStatus("launched"))

	require.Error(t, err)
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
}

func TestProjectList_ClientSeesOnlyOwnProjects(t *testing.T) {
	e := newEnv()
	other := e.store.addUser("other@example.com", "Other", models.RoleClient)
	own := e.store.addProject(e.client.ID, "Mine")
	e.store.addProject(other.ID, "Theirs")

	projects, err := e.projects.List(e.client, nil)

	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, own.ID, projects[0].ID)
}

func TestProjectList_AdminSeesAllAndCanFilter(t *testing.T) {
	e := newEnv()
	other := e.store.addUser("other@example.com", "Other", models.RoleClient)
	e.store.addProject(e.client.ID, "Mine")
	theirs := e.store.addProject(other.ID, "Theirs")

	all, err := e.projects.List(e.admin, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := e.projects.List(e.admin, &other.ID)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, theirs.ID, filtered[0].ID)
}

func TestProjectGet_ClientCannotReadForeignProject(t *testing.T) {
	e := newEnv()
	other := e.store.addUser("other@example.com", "Other", models.RoleClient)
	project := e.store.addProject(other.ID, "Theirs")

	_, err := e.projects.Get(e.client, project.ID)

	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}
