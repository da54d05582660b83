package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contentkosh/institute-api/internal/core/domain"
	"github.com/contentkosh/institute-api/internal/core/ports"
)

const (
	examCollection    = "exams"
	courseCollection  = "courses"
	subjectCollection = "subjects"
)

// catalogDoc is shared by exams, courses and subjects: the three levels of
// the catalog tree have identical shape apart from the parent key.
type catalogDoc struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description,omitempty"`
	IsActive    bool      `bson:"is_active"`
	ParentID    int64     `bson:"parent_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

// --- Exams ---

type MongoExamRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewExamRepository(db *mongo.Database) *MongoExamRepository {
	return &MongoExamRepository{db: db, coll: db.Collection(examCollection)}
}

func (r *MongoExamRepository) Create(ctx context.Context, exam *domain.Exam) (*domain.Exam, error) {
	doc, err := insertCatalogDoc(ctx, r.db, r.coll, examCollection, exam.Name, exam.Description, exam.BusinessID)
	if err != nil {
		return nil, err
	}
	return examFromDoc(doc), nil
}

func (r *MongoExamRepository) FindByID(ctx context.Context, id int64) (*domain.Exam, error) {
	doc, err := findCatalogDoc(ctx, r.coll, id, domain.ErrExamNotFound)
	if err != nil {
		return nil, err
	}
	return examFromDoc(doc), nil
}

func (r *MongoExamRepository) FindByBusiness(ctx context.Context, businessID int64) ([]domain.Exam, error) {
	docs, err := listCatalogDocs(ctx, r.coll, businessID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Exam, 0, len(docs))
	for _, d := range docs {
		out = append(out, *examFromDoc(&d))
	}
	return out, nil
}

func (r *MongoExamRepository) Update(ctx context.Context, id int64, update ports.UpdateExamInput) (*domain.Exam, error) {
	doc, err := updateCatalogDoc(ctx, r.coll, id, update.Name, update.Description, update.IsActive, domain.ErrExamNotFound)
	if err != nil {
		return nil, err
	}
	return examFromDoc(doc), nil
}

func (r *MongoExamRepository) Delete(ctx context.Context, id int64) error {
	return deleteCatalogDoc(ctx, r.coll, id, domain.ErrExamNotFound)
}

func examFromDoc(d *catalogDoc) *domain.Exam {
	return &domain.Exam{
		ID: d.ID, Name: d.Name, Description: d.Description, IsActive: d.IsActive,
		BusinessID: d.ParentID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// --- Courses ---

type MongoCourseRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *MongoCourseRepository {
	return &MongoCourseRepository{db: db, coll: db.Collection(courseCollection)}
}

func (r *MongoCourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	doc, err := insertCatalogDoc(ctx, r.db, r.coll, courseCollection, course.Name, course.Description, course.ExamID)
	if err != nil {
		return nil, err
	}
	return courseFromDoc(doc), nil
}

func (r *MongoCourseRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	doc, err := findCatalogDoc(ctx, r.coll, id, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return courseFromDoc(doc), nil
}

func (r *MongoCourseRepository) FindByExam(ctx context.Context, examID int64) ([]domain.Course, error) {
	docs, err := listCatalogDocs(ctx, r.coll, examID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Course, 0, len(docs))
	for _, d := range docs {
		out = append(out, *courseFromDoc(&d))
	}
	return out, nil
}

func (r *MongoCourseRepository) Update(ctx context.Context, id int64, update ports.UpdateCourseInput) (*domain.Course, error) {
	doc, err := updateCatalogDoc(ctx, r.coll, id, update.Name, update.Description, update.IsActive, domain.ErrCourseNotFound)
	if err != nil {
		return nil, err
	}
	return courseFromDoc(doc), nil
}

func (r *MongoCourseRepository) Delete(ctx context.Context, id int64) error {
	return deleteCatalogDoc(ctx, r.coll, id, domain.ErrCourseNotFound)
}

func courseFromDoc(d *catalogDoc) *domain.Course {
	return &domain.Course{
		ID: d.ID, Name: d.Name, Description: d.Description, IsActive: d.IsActive,
		ExamID: d.ParentID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// --- Subjects ---

type MongoSubjectRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewSubjectRepository(db *mongo.Database) *MongoSubjectRepository {
	return &MongoSubjectRepository{db: db, coll: db.Collection(subjectCollection)}
}

func (r *MongoSubjectRepository) Create(ctx context.Context, subject *domain.Subject) (*domain.Subject, error) {
	doc, err := insertCatalogDoc(ctx, r.db, r.coll, subjectCollection, subject.Name, subject.Description, subject.CourseID)
	if err != nil {
		return nil, err
	}
	return subjectFromDoc(doc), nil
}

func (r *MongoSubjectRepository) FindByID(ctx context.Context, id int64) (*domain.Subject, error) {
	doc, err := findCatalogDoc(ctx, r.coll, id, domain.ErrSubjectNotFound)
	if err != nil {
		return nil, err
	}
	return subjectFromDoc(doc), nil
}

func (r *MongoSubjectRepository) FindByCourse(ctx context.Context, courseID int64) ([]domain.Subject, error) {
	docs, err := listCatalogDocs(ctx, r.coll, courseID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Subject, 0, len(docs))
	for _, d := range docs {
		out = append(out, *subjectFromDoc(&d))
	}
	return out, nil
}

func (r *MongoSubjectRepository) Update(ctx context.Context, id int64, update ports.UpdateSubjectInput) (*domain.Subject, error) {
	doc, err := updateCatalogDoc(ctx, r.coll, id, update.Name, update.Description, update.IsActive, domain.ErrSubjectNotFound)
	if err != nil {
		return nil, err
	}
	return subjectFromDoc(doc), nil
}

func (r *MongoSubjectRepository) Delete(ctx context.Context, id int64) error {
	return deleteCatalogDoc(ctx, r.coll, id, domain.ErrSubjectNotFound)
}

func subjectFromDoc(d *catalogDoc) *domain.Subject {
	return &domain.Subject{
		ID: d.ID, Name: d.Name, Description: d.Description, IsActive: d.IsActive,
		CourseID: d.ParentID, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

// --- Shared helpers ---

func insertCatalogDoc(ctx context.Context, db *mongo.Database, coll *mongo.Collection, sequence, name, description string, parentID int64) (*catalogDoc, error) {
	id, err := nextID(ctx, db, sequence)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := catalogDoc{
		ID:          id,
		Name:        name,
		Description: description,
		IsActive:    true,
		ParentID:    parentID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert %s: %w", sequence, err)
	}
	return &doc, nil
}

func findCatalogDoc(ctx context.Context, coll *mongo.Collection, id int64, notFound error) (*catalogDoc, error) {
	var doc catalogDoc
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound
		}
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func listCatalogDocs(ctx context.Context, coll *mongo.Collection, parentID int64) ([]catalogDoc, error) {
	cur, err := coll.Find(ctx, bson.M{"parent_id": parentID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", coll.Name(), err)
	}
	var docs []catalogDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return docs, nil
}

func updateCatalogDoc(ctx context.Context, coll *mongo.Collection, id int64, name, description *string, isActive *bool, notFound error) (*catalogDoc, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	setString(set, "name", name)
	setString(set, "description", description)
	setBool(set, "is_active", isActive)

	var doc catalogDoc
	err := coll.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, notFound
		}
		return nil, fmt.Errorf("update %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func deleteCatalogDoc(ctx context.Context, coll *mongo.Collection, id int64, notFound error) error {
	res, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s: %w", coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return notFound
	}
	return nil
}
