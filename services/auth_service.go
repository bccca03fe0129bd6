package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/NeuraX-HQ/neurax-web-app/db"
	"github.com/NeuraX-HQ/neurax-web-app/models"
	"github.com/NeuraX-HQ/neurax-web-app/utils"
)

const (
	KeyAuthToken          = "auth_token"
	KeyOnboardingComplete = "onboarding_complete"
	KeyUserProfile        = "user_profile"

	GuestToken     = "guest"
	onboardedValue = "true"
)

type Provider string

const (
	ProviderApple  Provider = "apple"
	ProviderGoogle Provider = "google"
	ProviderGuest  Provider = "guest"
)

var (
	ErrBusy             = errors.New("another auth action is in progress")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrInvalidStep      = errors.New("unknown onboarding step")
	ErrNoProfile        = errors.New("no stored profile")
)

type AuthStatus struct {
	IsAuthenticated bool                `json:"isAuthenticated"`
	IsOnboarded     bool                `json:"isOnboarded"`
	IsGuest         bool                `json:"isGuest"`
	Provider        Provider            `json:"provider,omitempty"`
	User            *models.UserProfile `json:"user"`
}

func DefaultNotificationPreferences() models.NotificationPreferences {
	return models.NotificationPreferences{
		MealReminders:    true,
		StreakAlerts:     true,
		ChallengeUpdates: true,
		DailyTips:        false,
	}
}

func DefaultReminderTimes() models.ReminderTimes {
	return models.ReminderTimes{Morning: "08:00", Lunch: "12:00", Dinner: "18:00"}
}

func DefaultOnboardingData() models.OnboardingData {
	return models.OnboardingData{
		Goals:                   []string{},
		Weight:                  60,
		Height:                  165,
		Age:                     25,
		Gender:                  models.GenderFemale,
		ActivityLevel:           models.ActivityModerate,
		DietaryRestrictions:     []string{},
		Allergies:               []string{},
		NotificationPreferences: DefaultNotificationPreferences(),
		ReminderTimes:           DefaultReminderTimes(),
	}
}

// onboarding steps: goals, measurements, diet, notifications
var stepFields = map[int][]string{
	1: {"goals"},
	2: {"weight", "height", "age", "gender", "activityLevel", "targetWeight"},
	3: {"dietaryRestrictions", "allergies"},
	4: {"morning", "lunch", "dinner"},
}

const OnboardingSteps = 4

type AuthOptions struct {
	SignInDelay time.Duration
	GuestDelay  time.Duration
}

// AuthService owns the session keys in secure storage, namespaced per device.
// Each key is written on its own; there is no transactional grouping.
type AuthService struct {
	store db.Store
	opts  AuthOptions

	mu     sync.Mutex
	busy   map[string]bool
	drafts map[string]models.OnboardingData
}

func NewAuthService(store db.Store, opts AuthOptions) *AuthService {
	return &AuthService{
		store:  store,
		opts:   opts,
		busy:   make(map[string]bool),
		drafts: make(map[string]models.OnboardingData),
	}
}

func storageKey(deviceID, name string) string {
	return deviceID + ":" + name
}

func (s *AuthService) begin(deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[deviceID] {
		return ErrBusy
	}
	s.busy[deviceID] = true
	return nil
}

func (s *AuthService) end(deviceID string) {
	s.mu.Lock()
	delete(s.busy, deviceID)
	s.mu.Unlock()
}

// IsBusy reports whether an auth action is in flight for the device.
func (s *AuthService) IsBusy(deviceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[deviceID]
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func providerForToken(token string) Provider {
	switch token {
	case GuestToken:
		return ProviderGuest
	case string(ProviderApple) + "_mock_token":
		return ProviderApple
	case string(ProviderGoogle) + "_mock_token":
		return ProviderGoogle
	}
	return ""
}

// CheckStatus never fails: storage errors degrade to the signed-out state.
func (s *AuthService) CheckStatus(ctx context.Context, deviceID string) AuthStatus {
	token, ok, err := s.store.Get(ctx, storageKey(deviceID, KeyAuthToken))
	if err != nil {
		utils.Logger.Warn("auth_status_check_failed", zap.String("device_id", deviceID), zap.Error(err))
		return AuthStatus{}
	}
	if !ok || token == "" {
		return AuthStatus{}
	}

	status := AuthStatus{
		IsAuthenticated: true,
		IsGuest:         token == GuestToken,
		Provider:        providerForToken(token),
	}
	flag, _, err := s.store.Get(ctx, storageKey(deviceID, KeyOnboardingComplete))
	if err != nil {
		utils.Logger.Warn("auth_status_check_failed", zap.String("device_id", deviceID), zap.Error(err))
		return AuthStatus{}
	}
	status.IsOnboarded = flag == onboardedValue

	profile, err := s.Profile(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, ErrNoProfile) {
			utils.Logger.Warn("stored_profile_unreadable", zap.String("device_id", deviceID), zap.Error(err))
		}
		profile = SampleUser()
	}
	status.User = &profile
	return status
}

// HasSession reports whether the device still holds an auth token.
func (s *AuthService) HasSession(ctx context.Context, deviceID string) (bool, error) {
	token, ok, err := s.store.Get(ctx, storageKey(deviceID, KeyAuthToken))
	if err != nil {
		return false, err
	}
	return ok && token != "", nil
}

func (s *AuthService) SignInWithApple(ctx context.Context, deviceID string) (AuthStatus, error) {
	return s.signIn(ctx, deviceID, ProviderApple)
}

func (s *AuthService) SignInWithGoogle(ctx context.Context, deviceID string) (AuthStatus, error) {
	return s.signIn(ctx, deviceID, ProviderGoogle)
}

func (s *AuthService) signIn(ctx context.Context, deviceID string, provider Provider) (AuthStatus, error) {
	if err := s.begin(deviceID); err != nil {
		return AuthStatus{}, err
	}
	defer s.end(deviceID)

	status, err := s.doSignIn(ctx, deviceID, provider)
	if err != nil {
		utils.Logger.Error("sign_in_failed",
			zap.String("device_id", deviceID),
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return AuthStatus{}, err
	}
	utils.Logger.Info("signed_in", zap.String("device_id", deviceID), zap.String("provider", string(provider)))
	return status, nil
}

func (s *AuthService) doSignIn(ctx context.Context, deviceID string, provider Provider) (AuthStatus, error) {
	if err := wait(ctx, s.opts.SignInDelay); err != nil {
		return AuthStatus{}, err
	}
	user := SampleUser()
	if err := s.store.Set(ctx, storageKey(deviceID, KeyAuthToken), string(provider)+"_mock_token"); err != nil {
		return AuthStatus{}, fmt.Errorf("store auth token: %w", err)
	}
	if err := s.saveProfile(ctx, deviceID, user); err != nil {
		return AuthStatus{}, err
	}
	flag, _, err := s.store.Get(ctx, storageKey(deviceID, KeyOnboardingComplete))
	if err != nil {
		return AuthStatus{}, fmt.Errorf("read onboarding flag: %w", err)
	}
	return AuthStatus{
		IsAuthenticated: true,
		IsOnboarded:     flag == onboardedValue,
		Provider:        provider,
		User:            &user,
	}, nil
}

// ContinueAsGuest reports the guest as not onboarded; the stored flag is left alone.
func (s *AuthService) ContinueAsGuest(ctx context.Context, deviceID string) (AuthStatus, error) {
	if err := s.begin(deviceID); err != nil {
		return AuthStatus{}, err
	}
	defer s.end(deviceID)

	if err := wait(ctx, s.opts.GuestDelay); err != nil {
		return AuthStatus{}, err
	}
	guest := SampleUser()
	guest.ID = utils.NewID("guest")
	guest.Name = "Guest"
	guest.Email = ""

	if err := s.store.Set(ctx, storageKey(deviceID, KeyAuthToken), GuestToken); err != nil {
		utils.Logger.Error("guest_mode_failed", zap.String("device_id", deviceID), zap.Error(err))
		return AuthStatus{}, fmt.Errorf("store auth token: %w", err)
	}
	if err := s.saveProfile(ctx, deviceID, guest); err != nil {
		utils.Logger.Error("guest_mode_failed", zap.String("device_id", deviceID), zap.Error(err))
		return AuthStatus{}, err
	}
	utils.Logger.Info("guest_session_started", zap.String("device_id", deviceID), zap.String("user_id", guest.ID))
	return AuthStatus{
		IsAuthenticated: true,
		IsGuest:         true,
		Provider:        ProviderGuest,
		User:            &guest,
	}, nil
}

// SignOut clears the token and profile. onboarding_complete survives for returning users.
func (s *AuthService) SignOut(ctx context.Context, deviceID string) error {
	if err := s.begin(deviceID); err != nil {
		return err
	}
	defer s.end(deviceID)

	if err := s.store.Delete(ctx, storageKey(deviceID, KeyAuthToken)); err != nil {
		utils.Logger.Error("sign_out_failed", zap.String("device_id", deviceID), zap.Error(err))
		return fmt.Errorf("delete auth token: %w", err)
	}
	if err := s.store.Delete(ctx, storageKey(deviceID, KeyUserProfile)); err != nil {
		utils.Logger.Error("sign_out_failed", zap.String("device_id", deviceID), zap.Error(err))
		return fmt.Errorf("delete profile: %w", err)
	}

	s.mu.Lock()
	delete(s.drafts, deviceID)
	s.mu.Unlock()

	utils.Logger.Info("signed_out", zap.String("device_id", deviceID))
	return nil
}

// Draft returns the in-progress onboarding form for the device.
func (s *AuthService) Draft(deviceID string) models.OnboardingData {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.drafts[deviceID]; ok {
		return d
	}
	return DefaultOnboardingData()
}

func mergeOnboarding(d models.OnboardingData, p models.OnboardingPatch) models.OnboardingData {
	if p.Goals != nil {
		d.Goals = append([]string(nil), p.Goals...)
	}
	if p.Weight != nil {
		d.Weight = *p.Weight
	}
	if p.Height != nil {
		d.Height = *p.Height
	}
	if p.Age != nil {
		d.Age = *p.Age
	}
	if p.Gender != nil {
		d.Gender = *p.Gender
	}
	if p.ActivityLevel != nil {
		d.ActivityLevel = *p.ActivityLevel
	}
	if p.TargetWeight != nil {
		tw := *p.TargetWeight
		d.TargetWeight = &tw
	}
	if p.DietaryRestrictions != nil {
		d.DietaryRestrictions = append([]string(nil), p.DietaryRestrictions...)
	}
	if p.Allergies != nil {
		d.Allergies = append([]string(nil), p.Allergies...)
	}
	if p.NotificationPreferences != nil {
		d.NotificationPreferences = *p.NotificationPreferences
	}
	if p.ReminderTimes != nil {
		d.ReminderTimes = *p.ReminderTimes
	}
	return d
}

// validateFields runs the struct rules and keeps only failures on the named fields.
func validateFields(v interface{}, fields []string) error {
	err := utils.ValidateStruct(v)
	var verr *utils.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	kept := &utils.ValidationError{Fields: map[string]string{}}
	for _, f := range fields {
		if rule, ok := verr.Fields[f]; ok {
			kept.Fields[f] = rule
		}
	}
	if len(kept.Fields) == 0 {
		return nil
	}
	return kept
}

// UpdateOnboardingStep merges a partial draft. A step whose fields fail validation
// is rejected and the stored draft is left unchanged.
func (s *AuthService) UpdateOnboardingStep(deviceID string, step int, patch models.OnboardingPatch) (models.OnboardingData, error) {
	fields, ok := stepFields[step]
	if !ok {
		return models.OnboardingData{}, fmt.Errorf("%w: %d", ErrInvalidStep, step)
	}
	merged := mergeOnboarding(s.Draft(deviceID), patch)
	if err := validateFields(merged, fields); err != nil {
		return merged, err
	}
	s.mu.Lock()
	s.drafts[deviceID] = merged
	s.mu.Unlock()
	return merged, nil
}

// CompleteOnboarding computes TDEE and targets once and persists them, profile first.
func (s *AuthService) CompleteOnboarding(ctx context.Context, deviceID string, data models.OnboardingData) (models.UserProfile, error) {
	if err := s.begin(deviceID); err != nil {
		return models.UserProfile{}, err
	}
	defer s.end(deviceID)

	if data.ReminderTimes == (models.ReminderTimes{}) {
		data.ReminderTimes = DefaultReminderTimes()
	}
	if err := utils.ValidateStruct(data); err != nil {
		return models.UserProfile{}, err
	}

	authed, err := s.HasSession(ctx, deviceID)
	if err != nil {
		utils.Logger.Error("complete_onboarding_failed", zap.String("device_id", deviceID), zap.Error(err))
		return models.UserProfile{}, err
	}
	if !authed {
		return models.UserProfile{}, ErrNotAuthenticated
	}

	tdee, targets, err := TargetsFor(data)
	if err != nil {
		return models.UserProfile{}, utils.NewValidationError("gender", err.Error())
	}

	profile, err := s.Profile(ctx, deviceID)
	if err != nil {
		profile = SampleUser()
	}
	profile.Goals = append([]string(nil), data.Goals...)
	profile.Weight = data.Weight
	profile.Height = data.Height
	profile.Age = data.Age
	profile.Gender = data.Gender
	profile.ActivityLevel = data.ActivityLevel
	profile.TargetWeight = data.TargetWeight
	profile.DietaryRestrictions = data.DietaryRestrictions
	profile.Allergies = data.Allergies
	profile.NotificationPreferences = data.NotificationPreferences
	profile.ReminderTimes = data.ReminderTimes
	profile.TDEE = tdee
	profile.MacroTargets = targets

	if err := s.saveProfile(ctx, deviceID, profile); err != nil {
		utils.Logger.Error("complete_onboarding_failed", zap.String("device_id", deviceID), zap.Error(err))
		return models.UserProfile{}, err
	}
	if err := s.store.Set(ctx, storageKey(deviceID, KeyOnboardingComplete), onboardedValue); err != nil {
		utils.Logger.Error("complete_onboarding_failed", zap.String("device_id", deviceID), zap.Error(err))
		return models.UserProfile{}, fmt.Errorf("store onboarding flag: %w", err)
	}

	s.mu.Lock()
	s.drafts[deviceID] = data
	s.mu.Unlock()

	utils.OnboardingCompleted.Inc()
	utils.Logger.Info("onboarding_completed",
		zap.String("device_id", deviceID),
		zap.Int("tdee", tdee),
		zap.Int("calorie_target", targets.Calories),
	)
	return profile, nil
}

func (s *AuthService) Profile(ctx context.Context, deviceID string) (models.UserProfile, error) {
	raw, ok, err := s.store.Get(ctx, storageKey(deviceID, KeyUserProfile))
	if err != nil {
		return models.UserProfile{}, err
	}
	if !ok {
		return models.UserProfile{}, ErrNoProfile
	}
	var profile models.UserProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("decode profile: %w", err)
	}
	return profile, nil
}

func (s *AuthService) saveProfile(ctx context.Context, deviceID string, profile models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.store.Set(ctx, storageKey(deviceID, KeyUserProfile), string(raw)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return nil
}
