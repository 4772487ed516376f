package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vkravets/contacts_api/internal/apperrors"
	"github.com/vkravets/contacts_api/internal/core/domain"
	portsrepo "github.com/vkravets/contacts_api/internal/core/ports/repositories"
	portssvc "github.com/vkravets/contacts_api/internal/core/ports/services"
	"github.com/vkravets/contacts_api/internal/core/services"
	"github.com/vkravets/contacts_api/internal/dto"
)

// --- Mock ContactRepository ---
type MockContactRepository struct {
	mock.Mock
	SaveContactFn     func(ctx context.Context, contact domain.Contact) error
	FindContactByIDFn func(ctx context.Context, userID, contactID string) (*domain.Contact, error)
	FindContactsFn    func(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error)
	UpdateContactFn   func(ctx context.Context, contact domain.Contact) error
	DeleteContactFn   func(ctx context.Context, userID, contactID string) error
	SearchContactsFn  func(ctx context.Context, userID string, query portsrepo.ContactQuery) ([]domain.Contact, error)
}

func (m *MockContactRepository) SaveContact(ctx context.Context, contact domain.Contact) error {
	if m.SaveContactFn != nil {
		return m.SaveContactFn(ctx, contact)
	}
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) FindContactByID(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	if m.FindContactByIDFn != nil {
		return m.FindContactByIDFn(ctx, userID, contactID)
	}
	args := m.Called(ctx, userID, contactID)
	var contact *domain.Contact
	if args.Get(0) != nil {
		contact = args.Get(0).(*domain.Contact)
	}
	return contact, args.Error(1)
}

func (m *MockContactRepository) FindContacts(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error) {
	if m.FindContactsFn != nil {
		return m.FindContactsFn(ctx, userID, limit, offset)
	}
	args := m.Called(ctx, userID, limit, offset)
	var contacts []domain.Contact
	if args.Get(0) != nil {
		contacts = args.Get(0).([]domain.Contact)
	}
	return contacts, args.Error(1)
}

func (m *MockContactRepository) UpdateContact(ctx context.Context, contact domain.Contact) error {
	if m.UpdateContactFn != nil {
		return m.UpdateContactFn(ctx, contact)
	}
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) DeleteContact(ctx context.Context, userID, contactID string) error {
	if m.DeleteContactFn != nil {
		return m.DeleteContactFn(ctx, userID, contactID)
	}
	args := m.Called(ctx, userID, contactID)
	return args.Error(0)
}

func (m *MockContactRepository) SearchContacts(ctx context.Context, userID string, query portsrepo.ContactQuery) ([]domain.Contact, error) {
	if m.SearchContactsFn != nil {
		return m.SearchContactsFn(ctx, userID, query)
	}
	args := m.Called(ctx, userID, query)
	var contacts []domain.Contact
	if args.Get(0) != nil {
		contacts = args.Get(0).([]domain.Contact)
	}
	return contacts, args.Error(1)
}

// --- Test Suite ---
type ContactServiceTestSuite struct {
	suite.Suite
	mockContactRepo *MockContactRepository
	service         portssvc.ContactSvcFacade
	userID          string
}

func (suite *ContactServiceTestSuite) SetupTest() {
	suite.mockContactRepo = new(MockContactRepository)
	suite.service = services.NewContactService(suite.mockContactRepo)
	suite.userID = uuid.NewString()
}

func validContactRequest() dto.ContactRequest {
	return dto.ContactRequest{
		FirstName:      "Bob",
		LastName:       "Builder",
		Email:          "bob@example.com",
		PhoneNumber:    "+380501234567",
		Birthday:       "1990-04-23",
		AdditionalInfo: "met at conference",
	}
}

// --- CreateContact Tests ---

func (suite *ContactServiceTestSuite) TestCreateContact_Success() {
	ctx := context.Background()
	req := validContactRequest()

	var saved domain.Contact
	suite.mockContactRepo.SaveContactFn = func(ctx context.Context, contact domain.Contact) error {
		saved = contact
		return nil
	}

	contact, err := suite.service.CreateContact(ctx, suite.userID, req)
	suite.Require().NoError(err)
	suite.Require().NotNil(contact)
	suite.NotEmpty(contact.ContactID)
	suite.Equal(suite.userID, contact.UserID)
	suite.Equal("Bob", contact.FirstName)
	suite.Equal(1990, saved.Birthday.Year())
	suite.Equal(time.April, saved.Birthday.Month())
	suite.Equal(23, saved.Birthday.Day())
}

func (suite *ContactServiceTestSuite) TestCreateContact_InvalidBirthday() {
	req := validContactRequest()
	req.Birthday = "23-04-1990"

	saveCalled := false
	suite.mockContactRepo.SaveContactFn = func(ctx context.Context, contact domain.Contact) error {
		saveCalled = true
		return nil
	}

	contact, err := suite.service.CreateContact(context.Background(), suite.userID, req)
	suite.Require().Error(err)
	suite.Nil(contact)
	suite.False(saveCalled)
}

// --- Get/List Tests ---

func (suite *ContactServiceTestSuite) TestGetContact_NotFound() {
	suite.mockContactRepo.FindContactByIDFn = func(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
		return nil, apperrors.ErrNotFound
	}

	contact, err := suite.service.GetContact(context.Background(), suite.userID, uuid.NewString())
	suite.Require().Error(err)
	suite.Nil(contact)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ContactServiceTestSuite) TestListContacts_PassesPagination() {
	expected := []domain.Contact{{ContactID: uuid.NewString()}, {ContactID: uuid.NewString()}}
	suite.mockContactRepo.FindContactsFn = func(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error) {
		suite.Equal(suite.userID, userID)
		suite.Equal(25, limit)
		suite.Equal(50, offset)
		return expected, nil
	}

	contacts, err := suite.service.ListContacts(context.Background(), suite.userID, 25, 50)
	suite.Require().NoError(err)
	suite.Len(contacts, 2)
}

// --- UpdateContact Tests ---

func (suite *ContactServiceTestSuite) TestUpdateContact_Success() {
	ctx := context.Background()
	contactID := uuid.NewString()
	existing := &domain.Contact{
		ContactID: contactID,
		UserID:    suite.userID,
		FirstName: "Old",
		LastName:  "Name",
		Birthday:  time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now().Add(-24 * time.Hour),
	}

	suite.mockContactRepo.FindContactByIDFn = func(ctx context.Context, userID, id string) (*domain.Contact, error) {
		suite.Equal(contactID, id)
		return existing, nil
	}
	var updated domain.Contact
	suite.mockContactRepo.UpdateContactFn = func(ctx context.Context, contact domain.Contact) error {
		updated = contact
		return nil
	}

	req := validContactRequest()
	contact, err := suite.service.UpdateContact(ctx, suite.userID, contactID, req)
	suite.Require().NoError(err)
	suite.Require().NotNil(contact)
	suite.Equal(contactID, updated.ContactID)
	suite.Equal("Bob", updated.FirstName)
	suite.Equal(1990, updated.Birthday.Year())
	suite.True(updated.LastUpdatedAt.After(updated.CreatedAt))
}

func (suite *ContactServiceTestSuite) TestUpdateContact_NotFound() {
	suite.mockContactRepo.FindContactByIDFn = func(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
		return nil, apperrors.ErrNotFound
	}

	contact, err := suite.service.UpdateContact(context.Background(), suite.userID, uuid.NewString(), validContactRequest())
	suite.Require().Error(err)
	suite.Nil(contact)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteContact Tests ---

func (suite *ContactServiceTestSuite) TestDeleteContact_NotFound() {
	suite.mockContactRepo.DeleteContactFn = func(ctx context.Context, userID, contactID string) error {
		return apperrors.ErrNotFound
	}

	err := suite.service.DeleteContact(context.Background(), suite.userID, uuid.NewString())
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- SearchContacts Tests ---

func (suite *ContactServiceTestSuite) TestSearchContacts_MapsParams() {
	var captured portsrepo.ContactQuery
	suite.mockContactRepo.SearchContactsFn = func(ctx context.Context, userID string, query portsrepo.ContactQuery) ([]domain.Contact, error) {
		captured = query
		return []domain.Contact{}, nil
	}

	params := dto.SearchContactsParams{FirstName: "Bob", LastName: "Builder", Email: "bob@example.com"}
	_, err := suite.service.SearchContacts(context.Background(), suite.userID, params)
	suite.Require().NoError(err)
	suite.Equal("Bob", captured.FirstName)
	suite.Equal("Builder", captured.LastName)
	suite.Equal("bob@example.com", captured.Email)
}

// --- UpcomingBirthdays Tests ---

func (suite *ContactServiceTestSuite) TestUpcomingBirthdays_TodayIncluded() {
	now := time.Now()
	contacts := []domain.Contact{
		{
			ContactID: uuid.NewString(),
			FirstName: "Today",
			Birthday:  time.Date(1990, now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		},
		{
			ContactID: uuid.NewString(),
			FirstName: "FarAway",
			Birthday:  now.AddDate(-30, 6, 0),
		},
	}

	suite.mockContactRepo.FindContactsFn = func(ctx context.Context, userID string, limit, offset int) ([]domain.Contact, error) {
		// The birthday scan reads the full list, not a page.
		suite.Equal(0, limit)
		return contacts, nil
	}

	matched, err := suite.service.UpcomingBirthdays(context.Background(), suite.userID)
	suite.Require().NoError(err)
	suite.Require().Len(matched, 1)
	suite.Equal("Today", matched[0].FirstName)
}

func TestContactServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContactServiceTestSuite))
}
