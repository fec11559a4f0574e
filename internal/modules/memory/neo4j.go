// README: Neo4j preference store; (:User)-[:PREFERS]->(:Preference {type, value}).
package memory

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const (
	neo4jSchemaQuery = `CREATE CONSTRAINT user_id_unique IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`

	// Drops the user's edge to any other value of the same type before linking the new one,
	// then removes preference nodes no user points at anymore.
	neo4jUpsertQuery = `
MERGE (u:User {id: $user_id})
WITH u
OPTIONAL MATCH (u)-[r:PREFERS]->(old:Preference {type: $type})
WHERE old.value <> $value
DELETE r
WITH u, collect(old) AS stale
MERGE (p:Preference {type: $type, value: $value})
MERGE (u)-[:PREFERS]->(p)
WITH stale
UNWIND stale AS s
WITH s WHERE NOT EXISTS { (s)<-[:PREFERS]-() }
DELETE s`

	neo4jGetAllQuery = `
MATCH (u:User {id: $user_id})-[:PREFERS]->(p:Preference)
RETURN p.type AS type, p.value AS value`

	neo4jCountQuery = `
MATCH (:User {id: $user_id})-[:PREFERS]->(p:Preference {type: $type})
RETURN count(p) AS n`

	neo4jDeleteQuery = `
MATCH (:User {id: $user_id})-[r:PREFERS]->(p:Preference {type: $type})
DELETE r
WITH p WHERE NOT EXISTS { (p)<-[:PREFERS]-() }
DELETE p`
)

type Neo4jStore struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewNeo4jStore connects, verifies connectivity and ensures the User id constraint.
func NewNeo4jStore(ctx context.Context, uri, username, password, database string) (*Neo4jStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j: create driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: verify connectivity: %w", err)
	}
	s := &Neo4jStore{driver: driver, database: database}
	if _, err := s.execute(ctx, neo4jSchemaQuery, nil); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4j: ensure schema: %w", err)
	}
	return s, nil
}

func (s *Neo4jStore) Upsert(ctx context.Context, userID, prefType, value string) error {
	_, err := s.execute(ctx, neo4jUpsertQuery, map[string]any{
		"user_id": userID,
		"type":    prefType,
		"value":   value,
	})
	return err
}

func (s *Neo4jStore) GetAll(ctx context.Context, userID string) (map[string]string, error) {
	res, err := s.execute(ctx, neo4jGetAllQuery, map[string]any{"user_id": userID}, neo4j.ExecuteQueryWithReadersRouting())
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(res.Records))
	for _, rec := range res.Records {
		t, _, err := neo4j.GetRecordValue[string](rec, "type")
		if err != nil {
			return nil, fmt.Errorf("neo4j: read type: %w", err)
		}
		v, _, err := neo4j.GetRecordValue[string](rec, "value")
		if err != nil {
			return nil, fmt.Errorf("neo4j: read value: %w", err)
		}
		out[t] = v
	}
	return out, nil
}

// Update re-points the user's edge instead of editing the shared preference node, so other
// users linked to the old value keep it.
func (s *Neo4jStore) Update(ctx context.Context, userID, prefType, value string) error {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	params := map[string]any{"user_id": userID, "type": prefType, "value": value}
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, neo4jCountQuery, params)
		if err != nil {
			return nil, err
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _, err := neo4j.GetRecordValue[int64](rec, "n")
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
		res, err = tx.Run(ctx, neo4jUpsertQuery, params)
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	return err
}

func (s *Neo4jStore) Delete(ctx context.Context, userID, prefType string) error {
	_, err := s.execute(ctx, neo4jDeleteQuery, map[string]any{"user_id": userID, "type": prefType})
	return err
}

func (s *Neo4jStore) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func (s *Neo4jStore) execute(ctx context.Context, query string, params map[string]any, opts ...neo4j.ExecuteQueryConfigurationOption) (*neo4j.EagerResult, error) {
	if s.database != "" {
		opts = append(opts, neo4j.ExecuteQueryWithDatabase(s.database))
	}
	return neo4j.ExecuteQuery(ctx, s.driver, query, params, neo4j.EagerResultTransformer, opts...)
}
