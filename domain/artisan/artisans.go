package artisan

import (
	"errors"
	"time"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/event"
	"rugcraft/idgen"
	"rugcraft/persistence"
	"rugcraft/session"

	"github.com/fundwit/go-commons/types"
	"github.com/jinzhu/gorm"
	"github.com/patrickmn/go-cache"
	"github.com/sony/sonyflake"
)

var (
	artisanIdWorker = sonyflake.NewSonyflake(sonyflake.Settings{})

	// detail lookups are read-mostly; cache entries briefly to keep the
	// board and work-order views from hammering the table
	detailCache = cache.New(1*time.Minute, 5*time.Minute)

	CreateArtisanFunc = CreateArtisan
	QueryArtisansFunc = QueryArtisans
	DetailArtisanFunc = DetailArtisan
)

func CreateArtisan(c *domain.ArtisanCreation, s *session.Session) (*domain.Artisan, error) {
	now := types.CurrentTimestamp()
	record := domain.Artisan{
		ID: idgen.NextID(artisanIdWorker),

		Name:  c.Name,
		Email: c.Email,
		Phone: c.Phone,
		Role:  c.Role,

		Specialties: domain.Specialties(c.Specialties),
		Active:      true,

		CreateTime: now,
		UpdateTime: now,
	}

	var ev *event.EventRecord
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	err1 := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		var err error
		ev, err = event.CreateEvent(event.SourceTypeArtisan, record.ID, record.Name,
			event.EventCategoryCreated, nil, &s.Identity, tx)
		return err
	})
	if err1 != nil {
		return nil, err1
	}

	if event.InvokeHandlersFunc != nil {
		event.InvokeHandlersFunc(ev)
	}
	return &record, nil
}

func QueryArtisans(query *domain.ArtisanQuery, s *session.Session) ([]domain.Artisan, error) {
	artisans := []domain.Artisan{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)

	q := db.Model(&domain.Artisan{})
	if query.Role != "" {
		q = q.Where("role = ?", query.Role)
	}
	if query.ActiveOnly {
		q = q.Where("active = ?", true)
	}

	if err := q.Order("name ASC").Find(&artisans).Error; err != nil {
		return nil, err
	}
	return artisans, nil
}

func DetailArtisan(id types.ID, s *session.Session) (*domain.Artisan, error) {
	if cached, found := detailCache.Get(id.String()); found {
		record, ok := cached.(domain.Artisan)
		if ok {
			return &record, nil
		}
	}

	record := domain.Artisan{}
	db := persistence.ActiveDataSourceManager.GormDB(s.Context)
	if err := db.Where(&domain.Artisan{ID: id}).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bizerror.ErrNotFound
		}
		return nil, err
	}

	detailCache.Set(id.String(), record, cache.DefaultExpiration)
	return &record, nil
}
