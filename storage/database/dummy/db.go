package dummydb

import (
	"sync"

	"github.com/coderDevDev/senior-cetizen-app-sub000/core/class"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/module"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/registry"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/user"
)

type (
	DB struct {
		user     *userTable
		module   *moduleTable
		category *categoryTable
		progress *progressTable
		senior   *seniorTable
		class    *classTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	moduleTable struct {
		sync.RWMutex
		table map[string]*module.Module
	}

	categoryTable struct {
		sync.RWMutex
		table map[string]*module.Category
	}

	// progressTable keys on userID + "|" + moduleID + "|" + sectionID.
	progressTable struct {
		sync.RWMutex
		table map[string]bool
	}

	seniorTable struct {
		sync.RWMutex
		table map[string]*registry.SeniorCitizen
	}

	classTable struct {
		sync.RWMutex
		table map[string]*class.Class
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:     &userTable{table: make(map[string]*user.User)},
		module:   &moduleTable{table: make(map[string]*module.Module)},
		category: &categoryTable{table: make(map[string]*module.Category)},
		progress: &progressTable{table: make(map[string]bool)},
		senior:   &seniorTable{table: make(map[string]*registry.SeniorCitizen)},
		class:    &classTable{table: make(map[string]*class.Class)},
	}
	return db, nil
}
