package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/multiblog/internal/blogservice"
	"github.com/sushihentaime/multiblog/internal/common"
	"github.com/sushihentaime/multiblog/internal/mailservice"
	"github.com/sushihentaime/multiblog/internal/pageservice"
	"github.com/sushihentaime/multiblog/internal/postservice"
	"github.com/sushihentaime/multiblog/internal/userservice"
)

type application struct {
	config         *Config
	logger         *slog.Logger
	db             common.Pool
	cache          *common.Cache
	userService    *userservice.UserService
	blogService    *blogservice.BlogService
	pageService    *pageservice.PageService
	postService    *postservice.PostService
	likeService    *postservice.LikeService
	commentService *postservice.CommentService
	replyService   *postservice.ReplyService
	mailService    *mailservice.MailService
	broker         *common.MessageBroker
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(".env")
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := common.DSN(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name)
	if _, err := common.Migrate("file://migrations", dsn); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := common.NewDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.MaxOpenConns, cfg.DB.MaxIdleConns, cfg.DB.MaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	broker, err := common.NewMessageBroker(cfg.AMQPURI())
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupBlogExchange(broker)
	if err != nil {
		logger.Error("failed to setup the blog exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := newApplication(cfg, logger, db, broker)
	app.mailService, err = mailservice.NewMailService(broker, cfg.Mail.Host, cfg.Mail.User, cfg.Mail.Password, cfg.Mail.Sender, cfg.Mail.Port, logger)
	if err != nil {
		logger.Error("failed to load the email templates", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := app.mailService.SendWelcomeEmail(); err != nil {
		logger.Error("failed to start the welcome email consumer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = app.serve()
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// newApplication wires the services around one pool. broker may be nil, which
// disables blog.created events.
func newApplication(cfg *Config, logger *slog.Logger, db common.Pool, broker *common.MessageBroker) *application {
	users := userservice.NewUserService(db)

	var producer common.MessageProducer
	if broker != nil {
		producer = broker
	}

	blogs := blogservice.NewBlogService(db, users, producer, logger)
	blogs.SetTxTimeout(cfg.TxTimeout)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		cache:          common.NewCache(3*time.Minute, 5*time.Minute),
		userService:    users,
		blogService:    blogs,
		pageService:    pageservice.NewPageService(db, blogs),
		postService:    postservice.NewPostService(db, blogs),
		likeService:    postservice.NewLikeService(db, blogs),
		commentService: postservice.NewCommentService(db, blogs),
		replyService:   postservice.NewReplyService(db, blogs),
		broker:         broker,
	}
}
