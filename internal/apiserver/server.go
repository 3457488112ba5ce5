// Package apiserver assembles the lectern API server: stores, services,
// orchestration and the HTTP/gRPC serving stack.
package apiserver

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/lectern-ai/lectern/internal/apiserver/config"
	"github.com/lectern-ai/lectern/internal/apiserver/service/assistant"
	assistantrepository "github.com/lectern-ai/lectern/internal/apiserver/service/assistant/domain/repo"
	"github.com/lectern-ai/lectern/internal/apiserver/service/chat"
	"github.com/lectern-ai/lectern/internal/apiserver/service/knowledge"
	"github.com/lectern-ai/lectern/internal/apiserver/service/llm"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration"
	"github.com/lectern-ai/lectern/internal/apiserver/service/orchestration/spi"
	"github.com/lectern-ai/lectern/internal/apiserver/service/org"
	orgrepository "github.com/lectern-ai/lectern/internal/apiserver/service/org/domain/repo"
	"github.com/lectern-ai/lectern/internal/apiserver/store/boltdb"
	"github.com/lectern-ai/lectern/internal/apiserver/store/inmemory"
	genericoptions "github.com/lectern-ai/lectern/internal/pkg/options"
	genericapiserver "github.com/lectern-ai/lectern/internal/pkg/server"
	"github.com/lectern-ai/lectern/pkg/http/shutdown"
	"github.com/lectern-ai/lectern/pkg/http/shutdown/posixsignal"
	"github.com/lectern-ai/lectern/pkg/logger"
)

type apiServer struct {
	gs               *shutdown.GracefulShutdown
	genericAPIServer *genericapiserver.GenericAPIServer
	gRPCAPIServer    *genericapiserver.GRPCAPIServer

	cfg *config.Config

	boltDB          *boltdb.DB
	knowledgeStore  *knowledge.Store
	workspaceLoader *knowledge.WorkspaceLoader

	llmModule        *llm.Module
	orchestrator     *orchestration.Orchestrator
	orgService       *org.Service
	assistantService *assistant.Service
	chatService      *chat.Service
}

type preparedAPIServer struct {
	*apiServer
}

// ExtraConfig holds the configuration for the auxiliary gRPC server.
type ExtraConfig struct {
	Addr       string
	MaxMsgSize int
}

type completedExtraConfig struct {
	*ExtraConfig
}

func (c *ExtraConfig) complete() completedExtraConfig {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:11681"
	}
	return completedExtraConfig{c}
}

// New creates the gRPC server from the completed configuration. The server
// carries reflection only until lectern grows gRPC-native services.
func (c completedExtraConfig) New() (*genericapiserver.GRPCAPIServer, error) {
	grpcServer := grpc.NewServer(grpc.MaxRecvMsgSize(c.MaxMsgSize))
	reflection.Register(grpcServer)

	return genericapiserver.NewGRPCAPIServer(grpcServer, c.Addr), nil
}

func createAPIServer(cfg *config.Config) (*apiServer, error) {
	gs := shutdown.New()
	gs.AddShutdownManager(posixsignal.NewPosixSignalManager())

	genericConfig, err := buildGenericConfig(cfg)
	if err != nil {
		return nil, err
	}
	genericServer, err := genericConfig.Complete().New()
	if err != nil {
		return nil, err
	}

	extraConfig, err := buildExtraConfig(cfg)
	if err != nil {
		return nil, err
	}
	extraServer, err := extraConfig.complete().New()
	if err != nil {
		return nil, err
	}

	server := &apiServer{
		gs:               gs,
		genericAPIServer: genericServer,
		gRPCAPIServer:    extraServer,
		cfg:              cfg,
	}

	if err := server.initStores(); err != nil {
		return nil, err
	}
	if err := server.initModules(); err != nil {
		return nil, err
	}

	return server, nil
}

// initStores opens the persistence backend and wires the repositories.
func (s *apiServer) initStores() error {
	switch s.cfg.StoreOptions.Type {
	case genericoptions.StoreTypeBoltDB:
		db, err := boltdb.Open(s.cfg.StoreOptions.Path)
		if err != nil {
			return fmt.Errorf("failed to open store at %q: %w", s.cfg.StoreOptions.Path, err)
		}
		s.boltDB = db
		logger.Info("[Server] BoltDB store opened at %s", s.cfg.StoreOptions.Path)
	case genericoptions.StoreTypeInMemory:
		logger.Info("[Server] in-memory store selected, nothing will be persisted")
	default:
		return fmt.Errorf("unknown store type %q", s.cfg.StoreOptions.Type)
	}
	return nil
}

// initModules builds the service graph bottom-up: organizations feed the
// connector layer, the connector layer and knowledge store feed the tools,
// the tools feed orchestration, orchestration feeds chat.
func (s *apiServer) initModules() error {
	cfg := s.cfg

	var (
		assistantRepo = assistantRepository(s)
		orgRepo       = organizationRepository(s)
	)

	s.orgService = org.NewService(orgRepo)

	llmCfg := &llm.Config{
		ModelOptions: cfg.ModelOptions,
		Resolver:     s.orgService,
	}
	llmModule, err := llmCfg.Complete().New(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create LLM module: %w", err)
	}
	s.llmModule = llmModule

	if cfg.ToolOptions.KnowledgePath != "" {
		store, err := knowledge.Open(cfg.ToolOptions.KnowledgePath)
		if err != nil {
			return fmt.Errorf("failed to open knowledge store at %q: %w", cfg.ToolOptions.KnowledgePath, err)
		}
		s.knowledgeStore = store

		if loader := knowledge.NewWorkspaceLoader(store, cfg.ToolOptions.WorkspaceDir); loader != nil {
			s.workspaceLoader = loader
			logger.Info("[Server] knowledge workspace loader watching %s", cfg.ToolOptions.WorkspaceDir)
		}
	}

	deps := spi.Dependencies{
		FileBaseDir: cfg.ToolOptions.FileBaseDir,
		Completions: llmModule,
	}
	if s.knowledgeStore != nil {
		deps.Knowledge = s.knowledgeStore
	}

	var registry *orchestration.Registry
	if cfg.ToolOptions.Enabled {
		registry = orchestration.NewInTreeRegistry(deps, cfg.ToolOptions.DisabledTools()...)
	} else {
		registry = orchestration.NewRegistry()
		logger.Info("[Server] tool orchestration disabled (tools.enabled=false)")
	}
	s.orchestrator = orchestration.NewOrchestrator(registry)
	s.orchestrator.SetToolDefaults(cfg.ToolOptions.ToolDefaults())

	s.assistantService = assistant.NewService(assistantRepo, s.orchestrator)
	s.chatService = chat.NewService(s.assistantService, s.orchestrator, llmModule.Dispatcher)

	logger.Info("[Server] modules initialized (%d tools, %d strategies)",
		registry.Len(), len(s.orchestrator.Strategies()))

	return nil
}

func (s *apiServer) PrepareRun() preparedAPIServer {
	initRouter(s.genericAPIServer.Engine, &routerDeps{
		assistants:   s.assistantService,
		organization: s.orgService,
		chat:         s.chatService,
		llm:          s.llmModule,
		orchestrator: s.orchestrator,
		knowledge:    s.knowledgeStore,
		auth:         s.cfg.AuthOptions,
	})

	s.gs.AddShutdownCallback(shutdown.Func(func(string) error {
		if s.workspaceLoader != nil {
			s.workspaceLoader.Close()
		}
		if s.knowledgeStore != nil {
			_ = s.knowledgeStore.Close()
		}
		if s.boltDB != nil {
			_ = s.boltDB.Close()
		}
		s.gRPCAPIServer.Stop()
		s.genericAPIServer.Close()
		return nil
	}))

	return preparedAPIServer{s}
}

func (s preparedAPIServer) Run() error {
	go s.gRPCAPIServer.Run()

	if err := s.gs.Start(); err != nil {
		log.Fatalf("start shutdown manager failed: %s", err.Error())
	}

	return s.genericAPIServer.Run()
}

func assistantRepository(s *apiServer) assistantrepository.AssistantRepository {
	if s.boltDB != nil {
		return boltdb.NewAssistantStore(s.boltDB)
	}
	return inmemory.NewAssistantStore()
}

func organizationRepository(s *apiServer) orgrepository.OrganizationRepository {
	if s.boltDB != nil {
		return boltdb.NewOrganizationStore(s.boltDB)
	}
	return inmemory.NewOrganizationStore()
}

func buildGenericConfig(cfg *config.Config) (*genericapiserver.Config, error) {
	genericConfig := genericapiserver.NewConfig()
	genericConfig.Mode = cfg.GenericServerRunOptions.Mode
	genericConfig.Address = fmt.Sprintf("%s:%d",
		cfg.GenericServerRunOptions.BindAddress, cfg.GenericServerRunOptions.BindPort)
	genericConfig.Healthz = cfg.GenericServerRunOptions.Healthz
	genericConfig.Profiling = cfg.GenericServerRunOptions.Profiling

	return genericConfig, nil
}

func buildExtraConfig(cfg *config.Config) (*ExtraConfig, error) {
	return &ExtraConfig{
		Addr:       fmt.Sprintf("%s:%d", cfg.GRPCOptions.BindAddress, cfg.GRPCOptions.BindPort),
		MaxMsgSize: cfg.GRPCOptions.MaxMsgSize,
	}, nil
}
