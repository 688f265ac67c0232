package specification

import (
	"strings"

	json "github.com/goccy/go-json"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MetadataEquals matches a top-level metadata attribute exactly.
type MetadataEquals struct {
	Key   string
	Value string
}

func (s MetadataEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(datatypes.JSONQuery("metadata").Equals(s.Value, s.Key))
}

// MetadataContainsAny matches rows whose metadata array at Key holds at
// least one of Values.
type MetadataContainsAny struct {
	Key    string
	Values []string
}

func (s MetadataContainsAny) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Values) == 0 {
		return db
	}
	conds := make([]string, 0, len(s.Values))
	args := make([]interface{}, 0, 2*len(s.Values))
	for _, v := range s.Values {
		b, _ := json.Marshal([]string{v})
		conds = append(conds, "metadata -> ? @> ?::jsonb")
		args = append(args, s.Key, string(b))
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}
