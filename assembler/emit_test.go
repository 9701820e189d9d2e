package assembler_test

import (
	"bytes"
	"errors"
	"log/slog"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/rvasm/assembler"
	"github.com/Urethramancer/rvasm/isa"
)

var _ = Describe("Assembler", func() {
	var (
		mockCtrl *gomock.Controller
		sink     *MockSink
		asm      *assembler.Assembler
		logBuf   *bytes.Buffer
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		sink = NewMockSink(mockCtrl)
		logBuf = &bytes.Buffer{}
		logger := slog.New(slog.NewTextHandler(logBuf, &slog.HandlerOptions{Level: assembler.LevelTrace}))
		asm = assembler.New().WithLogger(logger)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Context("when every line assembles", func() {
		It("should emit words in program order with their addresses", func() {
			gomock.InOrder(
				sink.EXPECT().WriteWord(uint32(0), isa.Word(0x003100b3)),
				sink.EXPECT().WriteWord(uint32(4), isa.Word(0x0020a223)),
				sink.EXPECT().WriteWord(uint32(8), isa.Word(0xfe000ce3)),
			)

			err := asm.Emit("top: add x1, x2, x3\nsw x2, 4(x1)\nbeq x0, x0, top", sink)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should honour the base address", func() {
			sink.EXPECT().WriteWord(uint32(0x1000), isa.Word(0x00008067))

			Expect(asm.WithBase(0x1000).Emit("jalr x0, x1, 0", sink)).To(Succeed())
		})

		It("should log labels and every encoded word", func() {
			sink.EXPECT().WriteWord(gomock.Any(), gomock.Any()).Times(2)

			Expect(asm.Emit("entry:\naddi x1, x0, 1\njal x0, entry", sink)).To(Succeed())
			Expect(logBuf.String()).To(ContainSubstring("name=entry"))
			Expect(logBuf.String()).To(ContainSubstring("label pass complete"))
			Expect(logBuf.String()).To(ContainSubstring("word=00100093"))
		})

		It("should stop at the first sink error", func() {
			sinkErr := errors.New("disk full")
			sink.EXPECT().WriteWord(uint32(0), gomock.Any()).Return(sinkErr)

			err := asm.Emit("add x1, x2, x3\nadd x1, x2, x3", sink)
			Expect(err).To(MatchError(sinkErr))
		})
	})

	Context("when any line fails", func() {
		DescribeTable("should emit nothing",
			func(src string, kind error, line int) {
				sink.EXPECT().WriteWord(gomock.Any(), gomock.Any()).Times(0)

				err := asm.Emit(src, sink)
				Expect(err).To(MatchError(kind))

				var le *assembler.LineError
				Expect(errors.As(err, &le)).To(BeTrue())
				Expect(le.Line).To(Equal(line))
			},
			Entry("unknown mnemonic on the last line", "add x1, x2, x3\nnop", assembler.ErrUnknownMnemonic, 2),
			Entry("bad register", "add x1, x2, x3\nadd x1, x2, sp2", assembler.ErrUnknownRegister, 2),
			Entry("out-of-range immediate", "addi x1, x1, 5000", assembler.ErrImmediateOutOfRange, 1),
			Entry("forward reference to nothing", "bne x1, x2, later\nadd x1, x2, x3", assembler.ErrUndefinedLabel, 1),
			Entry("redefined label", "x:\nadd x1, x2, x3\nx: add x1, x2, x3", assembler.ErrDuplicateLabel, 3),
			Entry("odd displacement", "jal x1, 6\njal x1, 7", assembler.ErrMisalignedTarget, 2),
		)
	})

	Describe("label table", func() {
		It("should be rebuilt on every run", func() {
			sink.EXPECT().WriteWord(gomock.Any(), gomock.Any()).AnyTimes()

			Expect(asm.Emit("a: add x1, x2, x3", sink)).To(Succeed())
			Expect(asm.Emit("a: add x1, x2, x3", sink)).To(Succeed())
			Expect(asm.Labels().Len()).To(Equal(1))
			Expect(asm.Labels().Names()).To(Equal([]string{"a"}))
		})

		It("should be empty after a failed run", func() {
			sink.EXPECT().WriteWord(gomock.Any(), gomock.Any()).AnyTimes()

			Expect(asm.Emit("a: add x1, x2, x3", sink)).To(Succeed())
			Expect(asm.Emit("b:\nb: add x1, x2, x3", sink)).To(MatchError(assembler.ErrDuplicateLabel))
			Expect(asm.Labels().Len()).To(BeZero())

			Expect(asm.Emit("a: add x1, x2, x3", sink)).To(Succeed())
			Expect(asm.Emit("a: add x1,,x2", sink)).To(MatchError(assembler.ErrMalformedOperands))
			Expect(asm.Labels().Len()).To(BeZero())
		})
	})
})
