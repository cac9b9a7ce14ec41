package artisan_test

import (
	"context"
	"testing"

	"rugcraft/bizerror"
	"rugcraft/domain"
	"rugcraft/domain/artisan"
	"rugcraft/event"
	"rugcraft/persistence"
	"rugcraft/testinfra"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T, testDatabase **testinfra.TestDatabase) {
	db := testinfra.StartMysqlTestDatabase("rugcraft")
	assert.Nil(t, db.DS.GormDB(context.Background()).AutoMigrate(
		&domain.Artisan{}, &event.EventRecord{}).Error)
	persistence.ActiveDataSourceManager = db.DS
	*testDatabase = db
}

func teardown(t *testing.T, testDatabase *testinfra.TestDatabase) {
	if testDatabase != nil {
		testinfra.StopMysqlTestDatabase(testDatabase)
	}
}

func TestCreateArtisan(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should create artisan with specialties", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := testinfra.BuildSession(100)
		record, err := artisan.CreateArtisan(&domain.ArtisanCreation{Name: "Fatima",
			Email: "fatima@example.com", Role: "tufter", Specialties: []string{"tufting", "trimming"}}, sec)
		Expect(err).To(BeNil())
		Expect(record.ID).ToNot(BeZero())
		Expect(record.Name).To(Equal("Fatima"))
		Expect(record.Active).To(BeTrue())
		Expect(record.Specialties).To(Equal(domain.Specialties{"tufting", "trimming"}))

		loaded, err := artisan.DetailArtisan(record.ID, sec)
		Expect(err).To(BeNil())
		Expect(loaded.Name).To(Equal("Fatima"))
		Expect(loaded.Specialties).To(Equal(domain.Specialties{"tufting", "trimming"}))
	})
}

func TestQueryArtisans(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should filter by role and active flag, ordered by name", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := testinfra.BuildSession(100)
		_, err := artisan.CreateArtisan(&domain.ArtisanCreation{Name: "Zahra", Role: "tufter"}, sec)
		Expect(err).To(BeNil())
		_, err = artisan.CreateArtisan(&domain.ArtisanCreation{Name: "Amina", Role: "tufter"}, sec)
		Expect(err).To(BeNil())
		_, err = artisan.CreateArtisan(&domain.ArtisanCreation{Name: "Karim", Role: "finisher"}, sec)
		Expect(err).To(BeNil())

		all, err := artisan.QueryArtisans(&domain.ArtisanQuery{}, sec)
		Expect(err).To(BeNil())
		Expect(len(all)).To(Equal(3))
		Expect(all[0].Name).To(Equal("Amina"))
		Expect(all[1].Name).To(Equal("Karim"))
		Expect(all[2].Name).To(Equal("Zahra"))

		tufters, err := artisan.QueryArtisans(&domain.ArtisanQuery{Role: "tufter"}, sec)
		Expect(err).To(BeNil())
		Expect(len(tufters)).To(Equal(2))
	})
}

func TestDetailArtisan(t *testing.T) {
	RegisterTestingT(t)
	var testDatabase *testinfra.TestDatabase

	t.Run("should report not found for unknown id", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		record, err := artisan.DetailArtisan(404404, testinfra.BuildSession(100))
		Expect(record).To(BeNil())
		Expect(err).To(Equal(bizerror.ErrNotFound))
	})

	t.Run("should serve cached detail after first load", func(t *testing.T) {
		defer teardown(t, testDatabase)
		setup(t, &testDatabase)

		sec := testinfra.BuildSession(100)
		record, err := artisan.CreateArtisan(&domain.ArtisanCreation{Name: "Fatima", Role: "tufter"}, sec)
		Expect(err).To(BeNil())

		first, err := artisan.DetailArtisan(record.ID, sec)
		Expect(err).To(BeNil())

		// a direct row change is not visible until the cache entry expires
		db := testDatabase.DS.GormDB(context.Background())
		Expect(db.Model(&domain.Artisan{}).Where("id = ?", record.ID).
			Updates(map[string]interface{}{"name": "renamed"}).Error).To(BeNil())

		second, err := artisan.DetailArtisan(record.ID, sec)
		Expect(err).To(BeNil())
		Expect(second.Name).To(Equal(first.Name))
	})
}
