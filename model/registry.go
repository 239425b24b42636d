package model

import (
	"sync"

	"github.com/rushteam/recserve/core"
	"github.com/rushteam/recserve/explain"
	"github.com/rushteam/recserve/pkg/logger"
)

// Registry 是进程级的模型登记表：每个 (信号, 解释器) 各占一个显式可空槽位，
// 进程启动时各自独立加载，缺谁记谁的日志，谁都不影响进程起来。
// 加载完成后整个 Registry 只读，多请求并发共享。
type Registry struct {
	Collaborative *MatrixFactorization
	Content       ContentModel
	Graph         *Embedding

	// session 槽位支持一次惰性重试：启动加载失败时保留目录信息，
	// 首个用到它的请求再试一次（进程生命周期内仅一次）。
	session     *SessionModel
	sessionDir  string
	sessionFile string
	sessionOnce sync.Once

	collabExplainer  *explain.KernelExplainer
	contentExplainer *explain.KernelExplainer
	graphExplainer   *explain.KernelExplainer
	fedExplainer     *explain.KernelExplainer
	fedExplainerFile string
}

// LoadRegistry 从模型目录装载全部制品。任何单个制品缺失/损坏都不是致命的，
// 对应槽位留空并记日志；目录或 manifest 整个缺失则返回空 Registry。
func LoadRegistry(dir string) *Registry {
	r := &Registry{sessionDir: dir}

	m, err := LoadManifest(dir)
	if err != nil {
		logger.Warn("model manifest unavailable, serving without models", "dir", dir, "error", err)
		return r
	}

	if m.Artifacts.Collaborative != "" {
		var art collaborativeArtifact
		if err := loadArtifact(dir, m.Artifacts.Collaborative, &art); err != nil {
			logger.Warn("collaborative model not loaded", "error", err)
		} else {
			r.Collaborative = &art.MatrixFactorization
		}
	}

	if m.Artifacts.Content != "" {
		var art contentArtifact
		if err := loadArtifact(dir, m.Artifacts.Content, &art); err != nil {
			logger.Warn("content model not loaded", "error", err)
		} else if cm, err := art.model(); err != nil {
			logger.Warn("content model not loaded", "error", err)
		} else {
			r.Content = cm
			if dense, ok := cm.(*DenseSimilarityMatrix); ok {
				// 稠密变体只覆盖 [0, rows) 的用户，超界用户这一路不出候选
				logger.Info("content model uses dense matrix", "rows", len(dense.Rows))
			}
		}
	}

	if m.Artifacts.Graph != "" {
		var art graphArtifact
		if err := loadArtifact(dir, m.Artifacts.Graph, &art); err != nil {
			logger.Warn("graph model not loaded", "error", err)
		} else {
			r.Graph = &Embedding{Dimension: art.Dimension, Vectors: art.Vectors}
		}
	}

	r.sessionFile = m.Artifacts.Session
	r.fedExplainerFile = m.Explainers.Federated
	if m.Artifacts.Session != "" {
		sess, fed := loadSession(dir, m.Artifacts.Session, m.Explainers.Federated)
		r.session = sess
		r.fedExplainer = fed
	}

	r.collabExplainer = r.loadCollabExplainer(dir, m.Explainers.Collaborative)
	r.contentExplainer = r.loadContentExplainer(dir, m.Explainers.Content)
	r.graphExplainer = r.loadGraphExplainer(dir, m.Explainers.Graph)

	logger.Info("model registry loaded",
		"collaborative", r.Collaborative != nil,
		"content", r.Content != nil,
		"graph", r.Graph != nil,
		"session", r.session != nil,
	)
	return r
}

// Session 返回会话模型。启动时没装上的话，这里做仅一次的惰性重试。
// 所有读取都经过同一个 Once：启动期装入的值在服务开始前写好，惰性重试的
// 写入发生在 Do 内部，两条路径对并发请求都有 happens-before 保证。
func (r *Registry) Session() *SessionModel {
	r.sessionOnce.Do(func() {
		if r.session != nil || r.sessionFile == "" {
			return
		}
		logger.Info("retrying session model load", "file", r.sessionFile)
		r.session, r.fedExplainer = loadSession(r.sessionDir, r.sessionFile, r.fedExplainerFile)
	})
	return r.session
}

// Explainer 返回信号对应的解释器；槽位为空返回 nil，调用侧按零解释处理。
func (r *Registry) Explainer(sig core.Signal) explain.Explainer {
	var e *explain.KernelExplainer
	switch sig {
	case core.SignalCollaborative:
		e = r.collabExplainer
	case core.SignalContent:
		e = r.contentExplainer
	case core.SignalGraph:
		e = r.graphExplainer
	case core.SignalFederated:
		// 先走一遍惰性加载路径，保证与 session 槽位的可见性一致
		r.Session()
		e = r.fedExplainer
	}
	if e == nil {
		return nil
	}
	return e
}

func loadSession(dir, file, explainerFile string) (*SessionModel, *explain.KernelExplainer) {
	var art sessionArtifact
	if err := loadArtifact(dir, file, &art); err != nil {
		logger.Warn("session model not loaded", "error", err)
		return nil, nil
	}
	sess := &SessionModel{
		Dimension:    art.Dimension,
		ProductIndex: art.ProductIndex,
		Embeddings:   art.Embeddings,
	}

	if explainerFile == "" {
		return sess, nil
	}
	var ea explainerArtifact
	if err := loadArtifact(dir, explainerFile, &ea); err != nil {
		logger.Warn("federated explainer not loaded", "error", err)
		return sess, nil
	}
	tail := ea.SessionTail
	fed := explain.NewKernelExplainer(core.SignalFederated.String(), func(v []float64) float64 {
		if len(v) == 0 {
			return 0
		}
		return sess.ScoreSequence(tail, int64(v[0]))
	}, ea.Basis)
	return sess, fed
}

func (r *Registry) loadCollabExplainer(dir, file string) *explain.KernelExplainer {
	if file == "" || r.Collaborative == nil {
		return nil
	}
	var ea explainerArtifact
	if err := loadArtifact(dir, file, &ea); err != nil {
		logger.Warn("collaborative explainer not loaded", "error", err)
		return nil
	}
	mf := r.Collaborative
	return explain.NewKernelExplainer(core.SignalCollaborative.String(), func(v []float64) float64 {
		if len(v) < 2 {
			return 0
		}
		return mf.Predict(int64(v[0]), int64(v[1]))
	}, ea.Basis)
}

func (r *Registry) loadContentExplainer(dir, file string) *explain.KernelExplainer {
	if file == "" || r.Content == nil {
		return nil
	}
	var ea explainerArtifact
	if err := loadArtifact(dir, file, &ea); err != nil {
		logger.Warn("content explainer not loaded", "error", err)
		return nil
	}
	cm := r.Content
	baseUser := ea.UserID
	return explain.NewKernelExplainer(core.SignalContent.String(), func(v []float64) float64 {
		if len(v) == 0 {
			return 0
		}
		scores, ok := cm.UserScores(baseUser)
		if !ok {
			return 0
		}
		return scores[int64(v[0])]
	}, ea.Basis)
}

func (r *Registry) loadGraphExplainer(dir, file string) *explain.KernelExplainer {
	if file == "" || r.Graph == nil {
		return nil
	}
	var ea explainerArtifact
	if err := loadArtifact(dir, file, &ea); err != nil {
		logger.Warn("graph explainer not loaded", "error", err)
		return nil
	}
	emb := r.Graph
	userNode := UserNode(ea.UserID)
	return explain.NewKernelExplainer(core.SignalGraph.String(), func(v []float64) float64 {
		if len(v) == 0 {
			return 0
		}
		return emb.Similarity(userNode, ProductNode(int64(v[0])))
	}, ea.Basis)
}
