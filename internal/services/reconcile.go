package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/staffhub-dev/staffhub/internal/models"
	"gorm.io/gorm"
)

// Reconciliation input items. Each item is either a reference to an
// existing taxonomy row or a request to resolve one by name; exactly one
// of the two cases is set, discriminated at the HTTP boundary.

type NewInterest struct {
	Name string
}

type InterestItem struct {
	Existing *uuid.UUID
	New      *NewInterest
}

type ExistingTechnology struct {
	ID     uuid.UUID
	RankID uuid.UUID
}

type NewTechnology struct {
	Name        string
	Description string
	RankID      uuid.UUID
}

type TechnologyItem struct {
	Existing *ExistingTechnology
	New      *NewTechnology
}

type ExistingProject struct {
	ID     uuid.UUID
	RoleID uuid.UUID
}

type NewProject struct {
	Name        string
	Description string
	RoleID      uuid.UUID
}

type ProjectItem struct {
	Existing *ExistingProject
	New      *NewProject
}

// NormalizeName lowercases and collapses whitespace so "Go  Lang" and
// "go lang" dedupe to the same taxonomy row.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func displayName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// ReplaceInterests swaps the employee's interest set for the resolved
// input batch. The whole batch is validated before anything is written;
// row creation, the delete of the old set and the insert of the new one
// share a single transaction.
func ReplaceInterests(dbc *gorm.DB, employeeID uuid.UUID, items []InterestItem) error {
	if err := verifyEmployeeExists(dbc, employeeID); err != nil {
		return err
	}

	existingIDs := make([]uuid.UUID, 0, len(items))
	newNames := make([]string, 0, len(items))

	for _, item := range items {
		if item.Existing != nil {
			existingIDs = append(existingIDs, *item.Existing)
		} else if item.New != nil {
			newNames = append(newNames, item.New.Name)
		} else {
			return ErrInvalidItem
		}
	}

	if err := validateBatch(existingIDs, newNames); err != nil {
		return err
	}

	referenced := make(map[uuid.UUID]models.Interest, len(existingIDs))

	for _, id := range existingIDs {
		var interest models.Interest

		if err := dbc.First(&interest, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &MissingReferenceError{Kind: "interest", ID: id}
			}
			return err
		}

		referenced[id] = interest
	}

	if err := checkNameCollisions(newNames, interestNames(referenced)); err != nil {
		return err
	}

	return dbc.Transaction(func(tx *gorm.DB) error {
		resolved := make([]models.EmployeeInterest, 0, len(items))

		for _, item := range items {
			if item.Existing != nil {
				resolved = append(resolved, models.EmployeeInterest{
					EmployeeID: employeeID,
					InterestID: *item.Existing,
				})
				continue
			}

			interest, err := resolveInterest(tx, item.New.Name)
			if err != nil {
				return err
			}

			resolved = append(resolved, models.EmployeeInterest{
				EmployeeID: employeeID,
				InterestID: interest.ID,
			})
		}

		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeInterest{}).Error; err != nil {
			return err
		}

		if len(resolved) == 0 {
			return nil
		}

		return tx.Create(&resolved).Error
	})
}

// ReplaceTechnologies follows the same contract as ReplaceInterests; each
// item additionally carries the rank the employee holds the technology at.
func ReplaceTechnologies(dbc *gorm.DB, employeeID uuid.UUID, items []TechnologyItem) error {
	if err := verifyEmployeeExists(dbc, employeeID); err != nil {
		return err
	}

	existingIDs := make([]uuid.UUID, 0, len(items))
	newNames := make([]string, 0, len(items))
	rankIDs := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		if item.Existing != nil {
			existingIDs = append(existingIDs, item.Existing.ID)
			rankIDs = append(rankIDs, item.Existing.RankID)
		} else if item.New != nil {
			newNames = append(newNames, item.New.Name)
			rankIDs = append(rankIDs, item.New.RankID)
		} else {
			return ErrInvalidItem
		}
	}

	if err := validateBatch(existingIDs, newNames); err != nil {
		return err
	}

	referenced := make(map[uuid.UUID]models.Technology, len(existingIDs))

	for _, id := range existingIDs {
		var technology models.Technology

		if err := dbc.First(&technology, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &MissingReferenceError{Kind: "technology", ID: id}
			}
			return err
		}

		referenced[id] = technology
	}

	names := make(map[string]struct{}, len(referenced))
	for _, technology := range referenced {
		names[NormalizeName(technology.Name)] = struct{}{}
	}

	if err := checkNameCollisions(newNames, names); err != nil {
		return err
	}

	for _, rankID := range rankIDs {
		var rank models.Rank

		if err := dbc.First(&rank, "id = ?", rankID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &MissingReferenceError{Kind: "rank", ID: rankID}
			}
			return err
		}
	}

	return dbc.Transaction(func(tx *gorm.DB) error {
		resolved := make([]models.EmployeeTechnology, 0, len(items))

		for _, item := range items {
			if item.Existing != nil {
				resolved = append(resolved, models.EmployeeTechnology{
					EmployeeID:   employeeID,
					TechnologyID: item.Existing.ID,
					RankID:       item.Existing.RankID,
				})
				continue
			}

			technology, err := resolveTechnology(tx, item.New.Name, item.New.Description)
			if err != nil {
				return err
			}

			resolved = append(resolved, models.EmployeeTechnology{
				EmployeeID:   employeeID,
				TechnologyID: technology.ID,
				RankID:       item.New.RankID,
			})
		}

		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeTechnology{}).Error; err != nil {
			return err
		}

		if len(resolved) == 0 {
			return nil
		}

		return tx.Create(&resolved).Error
	})
}

// ReplaceProjects: same contract, items carry the project role.
func ReplaceProjects(dbc *gorm.DB, employeeID uuid.UUID, items []ProjectItem) error {
	if err := verifyEmployeeExists(dbc, employeeID); err != nil {
		return err
	}

	existingIDs := make([]uuid.UUID, 0, len(items))
	newNames := make([]string, 0, len(items))
	roleIDs := make([]uuid.UUID, 0, len(items))

	for _, item := range items {
		if item.Existing != nil {
			existingIDs = append(existingIDs, item.Existing.ID)
			roleIDs = append(roleIDs, item.Existing.RoleID)
		} else if item.New != nil {
			newNames = append(newNames, item.New.Name)
			roleIDs = append(roleIDs, item.New.RoleID)
		} else {
			return ErrInvalidItem
		}
	}

	if err := validateBatch(existingIDs, newNames); err != nil {
		return err
	}

	referenced := make(map[uuid.UUID]models.Project, len(existingIDs))

	for _, id := range existingIDs {
		var project models.Project

		if err := dbc.First(&project, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &MissingReferenceError{Kind: "project", ID: id}
			}
			return err
		}

		referenced[id] = project
	}

	names := make(map[string]struct{}, len(referenced))
	for _, project := range referenced {
		names[NormalizeName(project.Name)] = struct{}{}
	}

	if err := checkNameCollisions(newNames, names); err != nil {
		return err
	}

	for _, roleID := range roleIDs {
		var role models.Role

		if err := dbc.First(&role, "id = ?", roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &MissingReferenceError{Kind: "role", ID: roleID}
			}
			return err
		}
	}

	return dbc.Transaction(func(tx *gorm.DB) error {
		resolved := make([]models.EmployeeProject, 0, len(items))

		for _, item := range items {
			if item.Existing != nil {
				resolved = append(resolved, models.EmployeeProject{
					EmployeeID: employeeID,
					ProjectID:  item.Existing.ID,
					RoleID:     item.Existing.RoleID,
				})
				continue
			}

			project, err := resolveProject(tx, item.New.Name, item.New.Description)
			if err != nil {
				return err
			}

			resolved = append(resolved, models.EmployeeProject{
				EmployeeID: employeeID,
				ProjectID:  project.ID,
				RoleID:     item.New.RoleID,
			})
		}

		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeProject{}).Error; err != nil {
			return err
		}

		if len(resolved) == 0 {
			return nil
		}

		return tx.Create(&resolved).Error
	})
}

func verifyEmployeeExists(dbc *gorm.DB, employeeID uuid.UUID) error {
	var employee models.Employee

	if err := dbc.First(&employee, "id = ?", employeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &MissingReferenceError{Kind: "employee", ID: employeeID}
		}
		return err
	}

	return nil
}

// validateBatch rejects internal conflicts before anything touches the
// store: the same existing id twice, or two new items normalizing to the
// same name.
func validateBatch(existingIDs []uuid.UUID, newNames []string) error {
	seenIDs := make(map[uuid.UUID]struct{}, len(existingIDs))

	for _, id := range existingIDs {
		if _, ok := seenIDs[id]; ok {
			return ErrDuplicateReference
		}
		seenIDs[id] = struct{}{}
	}

	seenNames := make(map[string]struct{}, len(newNames))

	for _, name := range newNames {
		normalized := NormalizeName(name)
		if _, ok := seenNames[normalized]; ok {
			return ErrDuplicateName
		}
		seenNames[normalized] = struct{}{}
	}

	return nil
}

func checkNameCollisions(newNames []string, referencedNames map[string]struct{}) error {
	for _, name := range newNames {
		if _, ok := referencedNames[NormalizeName(name)]; ok {
			return ErrNameConflict
		}
	}
	return nil
}

func interestNames(referenced map[uuid.UUID]models.Interest) map[string]struct{} {
	names := make(map[string]struct{}, len(referenced))
	for _, interest := range referenced {
		names[NormalizeName(interest.Name)] = struct{}{}
	}
	return names
}

// resolveInterest reuses the row whose normalized name matches, creating
// it only when no match exists.
func resolveInterest(tx *gorm.DB, name string) (models.Interest, error) {
	var interest models.Interest

	err := tx.Where("LOWER(name) = ?", NormalizeName(name)).First(&interest).Error
	if err == nil {
		return interest, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Interest{}, err
	}

	interest = models.Interest{Name: displayName(name)}
	if err := tx.Create(&interest).Error; err != nil {
		return models.Interest{}, err
	}

	return interest, nil
}

func resolveTechnology(tx *gorm.DB, name, description string) (models.Technology, error) {
	var technology models.Technology

	err := tx.Where("LOWER(name) = ?", NormalizeName(name)).First(&technology).Error
	if err == nil {
		return technology, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Technology{}, err
	}

	technology = models.Technology{Name: displayName(name), Description: strings.TrimSpace(description)}
	if err := tx.Create(&technology).Error; err != nil {
		return models.Technology{}, err
	}

	return technology, nil
}

func resolveProject(tx *gorm.DB, name, description string) (models.Project, error) {
	var project models.Project

	err := tx.Where("LOWER(name) = ?", NormalizeName(name)).First(&project).Error
	if err == nil {
		return project, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Project{}, err
	}

	project = models.Project{Name: displayName(name), Description: strings.TrimSpace(description)}
	if err := tx.Create(&project).Error; err != nil {
		return models.Project{}, err
	}

	return project, nil
}
