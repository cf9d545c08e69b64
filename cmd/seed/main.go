package main

import (
	"time"

	"school-service/internal/model"
	"school-service/pkg/config"
	"school-service/pkg/database"
	"school-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds the platform organization, its owner account and a demo tenant for
// local development. Safe to re-run: existing organizations are left alone.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if err := seedPlatform(db, log); err != nil {
		log.Fatal("Failed to seed platform organization", zap.Error(err))
	}
	if err := seedDemoOrganization(db, log); err != nil {
		log.Fatal("Failed to seed demo organization", zap.Error(err))
	}

	log.Info("Seeding complete")
}

func seedPlatform(db *gorm.DB, log *zap.Logger) error {
	var existing model.Organization
	if err := db.Where("slug = ?", "ufanisipro-platform").First(&existing).Error; err == nil {
		log.Info("Platform organization already present", zap.Uint("id", existing.ID))
		return nil
	}

	settings := model.DefaultOrgSettings()
	settings.IsPlatformOrg = true

	platform := model.Organization{
		Name:         "UfanisiPro Platform",
		Slug:         "ufanisipro-platform",
		Subscription: model.SubscriptionEnterprise,
		Status:       model.OrgStatusActive,
		Settings:     settings,
	}
	if err := db.Create(&platform).Error; err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), 12)
	if err != nil {
		return err
	}
	owner := model.User{
		Name:           "Platform Admin",
		Email:          "admin@ufanisipro.com",
		Password:       string(hashed),
		Role:           model.RolePlatformOwner,
		OrganizationID: platform.ID,
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	log.Info("Platform organization created",
		zap.Uint("organization_id", platform.ID),
		zap.String("owner", owner.Email))
	return nil
}

func seedDemoOrganization(db *gorm.DB, log *zap.Logger) error {
	var existing model.Organization
	if err := db.Where("slug = ?", model.Slugify("Greenwood Academy")).First(&existing).Error; err == nil {
		log.Info("Demo organization already present", zap.Uint("id", existing.ID))
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		org := model.Organization{
			Name:         "Greenwood Academy",
			Slug:         model.Slugify("Greenwood Academy"),
			Subscription: model.SubscriptionPremium,
			Status:       model.OrgStatusActive,
			Settings:     model.DefaultOrgSettings(),
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte("demo1234"), 12)
		if err != nil {
			return err
		}
		admin := model.User{
			Name:           "Grace Wanjiku",
			Email:          "grace@greenwood.ac",
			Password:       string(hashed),
			Role:           model.RoleOrgAdmin,
			OrganizationID: org.ID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		school := model.School{
			OrganizationID: org.ID,
			Name:           "Greenwood Primary",
			Address:        "12 Acacia Road",
		}
		if err := tx.Create(&school).Error; err != nil {
			return err
		}

		campus := model.Campus{
			OrganizationID: org.ID,
			SchoolID:       school.ID,
			Name:           "Main Campus",
		}
		if err := tx.Create(&campus).Error; err != nil {
			return err
		}

		teacher := model.User{
			Name:           "Daniel Otieno",
			Email:          "daniel@greenwood.ac",
			Password:       string(hashed),
			Role:           model.RoleTeacher,
			OrganizationID: org.ID,
		}
		if err := tx.Create(&teacher).Error; err != nil {
			return err
		}

		subject := model.Subject{
			OrganizationID: org.ID,
			SchoolID:       school.ID,
			Name:           "Mathematics",
			Code:           "MATH-101",
		}
		if err := tx.Create(&subject).Error; err != nil {
			return err
		}

		class := model.Class{
			OrganizationID: org.ID,
			SchoolID:       school.ID,
			CampusID:       &campus.ID,
			SubjectID:      subject.ID,
			TeacherID:      teacher.ID,
			Name:           "Grade 6 Mathematics",
		}
		if err := tx.Create(&class).Error; err != nil {
			return err
		}

		students := []model.Student{
			{OrganizationID: org.ID, SchoolID: school.ID, CampusID: &campus.ID, Name: "Amina Hassan", StudentNumber: "GW-001", GradeLevel: "6"},
			{OrganizationID: org.ID, SchoolID: school.ID, CampusID: &campus.ID, Name: "Brian Kiprop", StudentNumber: "GW-002", GradeLevel: "6"},
			{OrganizationID: org.ID, SchoolID: school.ID, CampusID: &campus.ID, Name: "Cynthia Achieng", StudentNumber: "GW-003", GradeLevel: "6"},
		}
		if err := tx.Create(&students).Error; err != nil {
			return err
		}

		for _, s := range students {
			enrollment := model.ClassStudent{
				OrganizationID: org.ID,
				ClassID:        class.ID,
				StudentID:      s.ID,
				EnrolledAt:     time.Now(),
			}
			if err := tx.Create(&enrollment).Error; err != nil {
				return err
			}
		}

		dueDate := time.Now().AddDate(0, 0, 7)
		assignment := model.Assignment{
			OrganizationID: org.ID,
			SchoolID:       school.ID,
			ClassID:        class.ID,
			TeacherID:      teacher.ID,
			Title:          "Fractions quiz",
			TotalPoints:    20,
			DueDate:        &dueDate,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		for i, s := range students {
			grade := model.Grade{
				OrganizationID: org.ID,
				StudentID:      s.ID,
				AssignmentID:   assignment.ID,
				ClassID:        class.ID,
				TeacherID:      teacher.ID,
				Score:          float64(14 + i*2),
				GradedAt:       time.Now(),
			}
			if err := tx.Create(&grade).Error; err != nil {
				return err
			}
		}

		log.Info("Demo organization created",
			zap.Uint("organization_id", org.ID),
			zap.String("admin", admin.Email))
		return nil
	})
}
