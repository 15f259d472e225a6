package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core/class"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/module"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/registry"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/user"
)

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, uname, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Username:  uname,
		Email:     email,
		Roles:     roles,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	usr.SetActive(isActive)
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateStudent creates an active student with the given learning styles.
func CreateStudent(
	t *testing.T,
	repo user.Repository,
	name, uname, email string,
	styles ...string,
) user.User {
	tstamp := time.Now().UTC()
	usr := user.User{
		Name:           name,
		Username:       uname,
		Email:          email,
		Roles:          []string{user.RoleStudent},
		LearningStyles: styles,
		CreatedAt:      tstamp,
		UpdatedAt:      tstamp,
	}
	usr.SetActive(true)
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateStudent() failed: %v", err)
	}
	return usr
}

func CreateModule(
	t *testing.T,
	repo module.Repository,
	title, categoryID, createdBy string,
	published bool,
	sections ...module.ContentSection,
) module.Module {
	tstamp := time.Now().UTC()
	doc := module.Module{
		Title:       title,
		Description: title + " description",
		CategoryID:  categoryID,
		Objectives:  []string{"learn " + title},
		Difficulty:  module.DifficultyBeginner,
		Sections:    sections,
		Published:   published,
		CreatedBy:   createdBy,
		CreatedAt:   tstamp,
		UpdatedAt:   tstamp,
	}
	doc, err := repo.CreateModule(context.Background(), doc)
	if err != nil {
		t.Fatalf("CreateModule() failed: %v", err)
	}
	return doc
}

// TextSection returns a minimal completed-by-reading section.
func TextSection(id, title string, position int) module.ContentSection {
	return module.ContentSection{
		ID:          id,
		Title:       title,
		ContentType: module.ContentText,
		Content:     &module.TextContent{Text: "Lorem ipsum"},
		Position:    position,
	}
}

// QuickCheckSection returns a gradable section with a single
// multiple-choice question.
func QuickCheckSection(id, title string, position int, correct string, options ...string) module.ContentSection {
	return module.ContentSection{
		ID:          id,
		Title:       title,
		ContentType: module.ContentQuickCheck,
		Content: &module.QuickCheckContent{
			QuickCheck: &module.Question{
				Type:          module.QuestionMultipleChoice,
				Question:      title + "?",
				Options:       options,
				CorrectAnswer: module.Answer{Value: correct},
				Points:        5,
			},
		},
		Position: position,
	}
}

// ActivitySection returns a section that completes on acknowledgement.
func ActivitySection(id, title string, position int) module.ContentSection {
	return module.ContentSection{
		ID:          id,
		Title:       title,
		ContentType: module.ContentActivity,
		Content: &module.ActivityContent{
			Activity: &module.ActivityData{
				Title:        title,
				Description:  title + " description",
				Instructions: []string{"do the thing"},
			},
		},
		Position: position,
	}
}

func CreateSenior(
	t *testing.T,
	repo registry.Repository,
	oscaID, firstName, lastName, barangay string,
	status registry.Status,
) registry.SeniorCitizen {
	tstamp := time.Now().UTC()
	sc := registry.SeniorCitizen{
		OscaID:      oscaID,
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: time.Date(1950, 6, 15, 0, 0, 0, 0, time.UTC),
		Gender:      "female",
		Address: registry.Address{
			Barangay:     barangay,
			Municipality: "Pili",
			Province:     "Camarines Sur",
		},
		Phone:     "+639170000000",
		Status:    status,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	sc, err := repo.CreateSenior(context.Background(), sc)
	if err != nil {
		t.Fatalf("CreateSenior() failed: %v", err)
	}
	return sc
}

// ClassAdder seeds classes; satisfied by the in-memory class repository.
type ClassAdder interface {
	AddClass(cls class.Class) class.Class
}

func CreateClass(
	t *testing.T,
	repo ClassAdder,
	name, teacherID string,
	studentIDs ...string,
) class.Class {
	tstamp := time.Now().UTC()
	return repo.AddClass(class.Class{
		Name:       name,
		TeacherID:  teacherID,
		StudentIDs: studentIDs,
		CreatedAt:  tstamp,
		UpdatedAt:  tstamp,
	})
}
