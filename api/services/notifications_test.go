package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/internal/events"
	"github.com/arnav4124/ASSET-MANAGEMENT-SYSTEM-sub001/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHandleAssetEvent_ProjectMembersEmailed(t *testing.T) {
	mockDB := new(MockAssetDB)
	mockMailer := new(MockMailer)
	n := &NotificationService{DB: mockDB, Mailer: mockMailer}

	projectID := uuid.New()
	alice := models.User{ID: uuid.New(), FirstName: "Alice", Email: "alice@example.com"}
	bob := models.User{ID: uuid.New(), FirstName: "Bob", Email: "bob@example.com"}

	event := events.NewAssetEvent(events.AssetAssigned, uuid.New(), "HO/LAP/0001", uuid.New())
	event.ProjectID = &projectID

	mockDB.On("GetProject", mock.Anything, projectID).Return(&models.Project{ID: projectID, Members: []uuid.UUID{alice.ID, bob.ID}}, nil)
	mockDB.On("GetUser", mock.Anything, alice.ID).Return(&alice, nil)
	mockDB.On("GetUser", mock.Anything, bob.ID).Return(&bob, nil)
	mockMailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "through one of your projects")
	})).Return(nil)
	mockMailer.On("Send", mock.Anything, "bob@example.com", mock.Anything, mock.Anything).Return(nil)
	mockDB.On("AppendHistory", mock.Anything, mock.MatchedBy(func(h models.AssetHistory) bool {
		return h.AssetID == event.AssetID && h.Action == "notified" &&
			h.Details == "emailed alice@example.com, bob@example.com"
	})).Return(nil)

	require.NoError(t, n.HandleAssetEvent(context.Background(), event))
	mockDB.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestHandleAssetEvent_UserEmailed(t *testing.T) {
	mockDB := new(MockAssetDB)
	mockMailer := new(MockMailer)
	n := &NotificationService{DB: mockDB, Mailer: mockMailer}

	user := models.User{ID: uuid.New(), FirstName: "Carol", Email: "carol@example.com"}
	event := events.NewAssetEvent(events.AssetAssigned, uuid.New(), "HO/LAP/0002", uuid.New())
	event.UserID = &user.ID

	mockDB.On("GetUser", mock.Anything, user.ID).Return(&user, nil)
	mockMailer.On("Send", mock.Anything, user.Email, "Asset HO/LAP/0002 has been assigned to you", mock.Anything).Return(nil)
	mockDB.On("AppendHistory", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, n.HandleAssetEvent(context.Background(), event))
	mockMailer.AssertExpectations(t)
}

func TestHandleAssetEvent_MailFailureIsReturned(t *testing.T) {
	mockDB := new(MockAssetDB)
	mockMailer := new(MockMailer)
	n := &NotificationService{DB: mockDB, Mailer: mockMailer}

	user := models.User{ID: uuid.New(), Email: "dave@example.com"}
	event := events.NewAssetEvent(events.AssetAssigned, uuid.New(), "HO/LAP/0003", uuid.New())
	event.UserID = &user.ID

	mockDB.On("GetUser", mock.Anything, user.ID).Return(&user, nil)
	mockMailer.On("Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("throttled"))

	err := n.HandleAssetEvent(context.Background(), event)
	require.Error(t, err)
	mockDB.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestHandleAssetEvent_IgnoresOtherEvents(t *testing.T) {
	mockDB := new(MockAssetDB)
	n := &NotificationService{DB: mockDB}

	for _, typ := range []events.EventType{events.AssetCreated, events.AssetUpdated, events.AssetUnassigned, events.AssetDisposed} {
		require.NoError(t, n.HandleAssetEvent(context.Background(), events.NewAssetEvent(typ, uuid.New(), "", uuid.New())))
	}
	mockDB.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestHandleAssetEvent_NoMailerSkipsHistory(t *testing.T) {
	mockDB := new(MockAssetDB)
	n := &NotificationService{DB: mockDB}

	user := models.User{ID: uuid.New(), Email: "erin@example.com"}
	event := events.NewAssetEvent(events.AssetAssigned, uuid.New(), "HO/LAP/0004", uuid.New())
	event.UserID = &user.ID
	mockDB.On("GetUser", mock.Anything, user.ID).Return(&user, nil)

	require.NoError(t, n.HandleAssetEvent(context.Background(), event))
	mockDB.AssertNotCalled(t, "AppendHistory", mock.Anything, mock.Anything)
}

func TestHandleAssetEvent_PartialMailFailureIsRecorded(t *testing.T) {
	mockDB := new(MockAssetDB)
	mockMailer := new(MockMailer)
	n := &NotificationService{DB: mockDB, Mailer: mockMailer}

	projectID := uuid.New()
	alice := models.User{ID: uuid.New(), FirstName: "Alice", Email: "alice@example.com"}
	bob := models.User{ID: uuid.New(), FirstName: "Bob", Email: "bob@example.com"}

	event := events.NewAssetEvent(events.AssetAssigned, uuid.New(), "HO/LAP/0005", uuid.New())
	event.ProjectID = &projectID

	mockDB.On("GetProject", mock.Anything, projectID).Return(&models.Project{ID: projectID, Members: []uuid.UUID{alice.ID, bob.ID}}, nil)
	mockDB.On("GetUser", mock.Anything, alice.ID).Return(&alice, nil)
	mockDB.On("GetUser", mock.Anything, bob.ID).Return(&bob, nil)
	mockMailer.On("Send", mock.Anything, "alice@example.com", mock.Anything, mock.Anything).Return(nil).Once()
	mockMailer.On("Send", mock.Anything, "bob@example.com", mock.Anything, mock.Anything).Return(errors.New("throttled")).Once()
	mockDB.On("AppendHistory", mock.Anything, mock.MatchedBy(func(h models.AssetHistory) bool {
		return h.Details == "emailed alice@example.com; failed bob@example.com"
	})).Return(nil)

	// The event is acknowledged so alice is not emailed twice on redelivery
	require.NoError(t, n.HandleAssetEvent(context.Background(), event))
	mockDB.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}
