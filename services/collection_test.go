package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqlerr "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel-api/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

var roomColumns = []string{"id", "created_at", "updated_at", "room_number", "room_type", "price", "description", "image_url"}

func TestGormCollectionGet(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `rooms` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("r1", now, now, "101", "Suite", 250.0, "sea view", "/uploads/a.jpg"))

	rooms := NewGormCollection[models.Room](db)
	room, err := rooms.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if room.ID != "r1" || room.RoomNumber != "101" || room.Price != 250 {
		t.Fatalf("unexpected room: %+v", room)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormCollectionGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `rooms`").WillReturnRows(sqlmock.NewRows(roomColumns))

	_, err := NewGormCollection[models.Room](db).Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormCollectionCreateAssignsID(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `rooms`").WillReturnResult(sqlmock.NewResult(0, 1))

	room := models.Room{RoomNumber: "102", RoomType: "Double", Price: 120, Description: "garden"}
	if err := NewGormCollection[models.Room](db).Create(context.Background(), &room); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if room.ID == "" {
		t.Fatalf("expected generated id")
	}
	if room.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormCollectionCreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("INSERT INTO `rooms`").
		WillReturnError(&mysqlerr.MySQLError{Number: 1062, Message: "Duplicate entry '102' for key 'idx_rooms_room_number'"})

	room := models.Room{RoomNumber: "102", RoomType: "Double", Price: 120}
	err := NewGormCollection[models.Room](db).Create(context.Background(), &room)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestGormCollectionUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("r1", now, now, "101", "Suite", 250.0, "sea view", ""))
	mock.ExpectExec("UPDATE `rooms` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("r1", now, now, "101", "Suite", 300.0, "sea view", ""))

	room, err := NewGormCollection[models.Room](db).Update(context.Background(), "r1", Fields{"price": 300.0})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if room.Price != 300 || room.Description != "sea view" {
		t.Fatalf("unexpected room after update: %+v", room)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormCollectionDelete(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `rooms`").
		WillReturnRows(sqlmock.NewRows(roomColumns).AddRow("r1", now, now, "101", "Suite", 250.0, "", ""))
	mock.ExpectExec("DELETE FROM `rooms`").WillReturnResult(sqlmock.NewResult(0, 1))

	room, err := NewGormCollection[models.Room](db).Delete(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if room.RoomNumber != "101" {
		t.Fatalf("expected deleted record back, got %+v", room)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGormCollectionDeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT \\* FROM `rooms`").WillReturnRows(sqlmock.NewRows(roomColumns))

	if _, err := NewGormCollection[models.Room](db).Delete(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestGormCollectionListFilterAndSort(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Now()
	cols := []string{"id", "created_at", "updated_at", "user_id", "guest_name", "email", "phone", "room_type", "check_in", "check_out", "guests"}
	mock.ExpectQuery("SELECT \\* FROM `bookings` WHERE `bookings`.`user_id` = \\? ORDER BY `created_at` DESC").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("b2", now, now, "u1", "Ann", "ann@example.com", "", "Suite", now, now.Add(48*time.Hour), 2).
			AddRow("b1", now.Add(-time.Hour), now, "u1", "Ann", "ann@example.com", "", "Single", now, now.Add(24*time.Hour), 1))

	recs, err := NewGormCollection[models.Booking](db).List(context.Background(), Filter{"user_id": "u1"}, NewestFirst)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != "b2" || recs[1].OwnerID != "u1" {
		t.Fatalf("unexpected bookings: %+v", recs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
