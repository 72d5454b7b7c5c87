package mongo

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.IHistoryRepository = (*HistoryRepo)(nil)

// calculationDoc — документ в коллекции calculations. _id — строковый UUID расчёта.
type calculationDoc struct {
	ID        string    `bson:"_id"`
	Operation string    `bson:"operation"`
	Operand1  float64   `bson:"operand1"`
	Operand2  float64   `bson:"operand2"`
	Result    float64   `bson:"result"`
	CreatedAt time.Time `bson:"created_at"`
}

func toDoc(c domain.Calculation) calculationDoc {
	return calculationDoc{
		ID:        c.ID.String(),
		Operation: c.Operation,
		Operand1:  c.Operand1,
		Operand2:  c.Operand2,
		Result:    c.Result,
		CreatedAt: c.Timestamp,
	}
}

// HistoryRepo реализует ports.IHistoryRepository для MongoDB.
type HistoryRepo struct {
	client *Client
	log    *slog.Logger
	saveMu sync.Mutex
}

const stagingSuffix = "_staging"

// NewHistoryRepo возвращает репозиторий истории.
func NewHistoryRepo(client *Client, log *slog.Logger) *HistoryRepo {
	return &HistoryRepo{client: client, log: log}
}

// SaveHistory заменяет сохранённую историю снимком атомарно: документы пишутся во временную
// коллекцию, которая затем переименовывается поверх основной. При ошибке основная коллекция не меняется.
// Сохранения внутри процесса идут по очереди, временная коллекция у них общая.
func (r *HistoryRepo) SaveHistory(ctx context.Context, history []domain.Calculation) error {
	r.saveMu.Lock()
	defer r.saveMu.Unlock()

	coll := r.client.Coll()
	db := coll.Database()
	staging := db.Collection(coll.Name() + stagingSuffix)

	if err := staging.Drop(ctx); err != nil {
		return fmt.Errorf("drop staging: %w", err)
	}
	if err := db.CreateCollection(ctx, staging.Name()); err != nil {
		return fmt.Errorf("create staging: %w", err)
	}
	if err := ensureIndexes(ctx, staging); err != nil {
		return err
	}
	if len(history) > 0 {
		docs := make([]any, 0, len(history))
		for _, c := range history {
			docs = append(docs, toDoc(c))
		}
		if _, err := staging.InsertMany(ctx, docs); err != nil {
			r.log.Debug("SaveHistory insert failed", "error", err)
			_ = staging.Drop(context.Background())
			return fmt.Errorf("insert history: %w", err)
		}
	}

	rename := bson.D{
		{Key: "renameCollection", Value: db.Name() + "." + staging.Name()},
		{Key: "to", Value: db.Name() + "." + coll.Name()},
		{Key: "dropTarget", Value: true},
	}
	if err := r.client.Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		r.log.Debug("SaveHistory rename failed", "error", err)
		return fmt.Errorf("swap history: %w", err)
	}
	return nil
}

// LoadHistory возвращает сохранённую историю (старые записи первыми).
func (r *HistoryRepo) LoadHistory(ctx context.Context) ([]domain.Calculation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.client.Coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Debug("LoadHistory failed", "error", err)
		return nil, err
	}
	defer cursor.Close(ctx)
	var docs []calculationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	list := make([]domain.Calculation, 0, len(docs))
	for _, d := range docs {
		c, err := d.toDomain()
		if err != nil {
			r.log.Warn("skip malformed calculation", "id", d.ID, "error", err)
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

// Ping проверяет доступность БД.
func (r *HistoryRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
