package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// 模型制品是离线训练侧导出的版本化 JSON 文件，由 manifest.yaml 索引。
// 在线侧只读不写；制品格式不兼容时加载失败，该槽位按缺失处理。

const (
	// ArtifactVersion 是当前在线侧能消费的制品版本。
	ArtifactVersion = 1

	manifestFile = "manifest.yaml"
)

// Manifest 索引一个模型目录里的全部制品。路径均相对于模型目录。
type Manifest struct {
	Version   int `yaml:"version"`
	Artifacts struct {
		Collaborative string `yaml:"collaborative"`
		Content       string `yaml:"content"`
		Graph         string `yaml:"graph"`
		Session       string `yaml:"session"`
	} `yaml:"artifacts"`
	Explainers struct {
		Collaborative string `yaml:"collaborative"`
		Content       string `yaml:"content"`
		Graph         string `yaml:"graph"`
		Federated     string `yaml:"federated"`
	} `yaml:"explainers"`
}

// LoadManifest 读取模型目录的 manifest。
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version != ArtifactVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return &m, nil
}

type collaborativeArtifact struct {
	Version int `json:"version"`
	MatrixFactorization
}

type contentArtifact struct {
	Version int    `json:"version"`
	Kind    string `json:"kind"` // sparse / dense
	// 稀疏变体：user -> (product -> score)
	UserScores map[int64]map[int64]float64 `json:"user_scores,omitempty"`
	// 稠密变体：行 = 用户，列 = 商品 ID
	Rows [][]float64 `json:"rows,omitempty"`
}

type graphArtifact struct {
	Version   int                  `json:"version"`
	Dimension int                  `json:"dimension"`
	Vectors   map[string][]float64 `json:"vectors"`
}

type sessionArtifact struct {
	Version      int           `json:"version"`
	Dimension    int           `json:"dimension"`
	ProductIndex map[int64]int `json:"product_index"`
	Embeddings   [][]float64   `json:"embeddings"`
}

// explainerArtifact 是归因参数制品：采样基底 + 方法配置。
// 解释器不单独持有模型，加载时绑定到同信号 scorer 的决策函数上。
type explainerArtifact struct {
	Version int    `json:"version"`
	Signal  string `json:"signal"`
	Method  string `json:"method"` // kernel
	// Basis 是预生成的代表性样本，作为扰动归因的背景分布
	Basis [][]float64 `json:"basis"`
	// UserID 是 content/graph 解释器拟合时固定的基准用户
	UserID int64 `json:"user_id,omitempty"`
	// SessionTail 是 federated 解释器拟合时固定的会话尾部
	SessionTail []int64 `json:"session_tail,omitempty"`
}

func loadArtifact(dir, file string, out interface{ version() int }) error {
	data, err := os.ReadFile(filepath.Join(dir, file))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}
	if v := out.version(); v != ArtifactVersion {
		return fmt.Errorf("%s: unsupported artifact version %d", file, v)
	}
	return nil
}

func (a *collaborativeArtifact) version() int { return a.Version }
func (a *contentArtifact) version() int       { return a.Version }
func (a *graphArtifact) version() int         { return a.Version }
func (a *sessionArtifact) version() int       { return a.Version }
func (a *explainerArtifact) version() int     { return a.Version }

func (a *contentArtifact) model() (ContentModel, error) {
	switch a.Kind {
	case "sparse":
		return &SparseUserScores{Scores: a.UserScores}, nil
	case "dense":
		return &DenseSimilarityMatrix{Rows: a.Rows}, nil
	}
	return nil, fmt.Errorf("unknown content artifact kind %q", a.Kind)
}
