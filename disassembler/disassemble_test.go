package disassembler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Urethramancer/rvasm/assembler"
	"github.com/Urethramancer/rvasm/disassembler"
	"github.com/Urethramancer/rvasm/isa"
)

func assemble(src string) []isa.Word {
	prog, err := assembler.New().Assemble(src)
	Expect(err).NotTo(HaveOccurred())
	return prog.Words
}

var _ = Describe("Disassemble", func() {
	It("should return nothing for no words", func() {
		text, err := disassembler.Disassemble(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(BeEmpty())
	})

	DescribeTable("should render single instructions",
		func(word uint32, mnemonic, operands string) {
			inst := disassembler.Decode(isa.Word(word), 0x40)
			Expect(inst.Valid).To(BeTrue())
			Expect(inst.Mnemonic).To(Equal(mnemonic))
			Expect(inst.Operands).To(Equal(operands))
		},
		Entry("add", uint32(0x003100b3), "add", "x1, x2, x3"),
		Entry("sub", uint32(0x407302b3), "sub", "x5, x6, x7"),
		Entry("lw", uint32(0xffc12283), "lw", "x5, -4(x2)"),
		Entry("addi", uint32(0xfff00093), "addi", "x1, x0, -1"),
		Entry("jalr", uint32(0x00008067), "jalr", "x0, x1, 0"),
		Entry("sw", uint32(0x0020a223), "sw", "x2, 4(x1)"),
		Entry("bne", uint32(0xfe209ee3), "bne", "x1, x2, -4"),
		Entry("jal", uint32(0xffdff0ef), "jal", "x1, -4"),
	)

	It("should compute absolute targets for branches and jumps", func() {
		inst := disassembler.Decode(isa.Word(0xfe209ee3), 0x40)
		Expect(inst.HasTarget).To(BeTrue())
		Expect(inst.Target).To(Equal(uint32(0x3c)))

		inst = disassembler.Decode(isa.Word(0xffdff0ef), 0)
		Expect(inst.HasTarget).To(BeFalse())
	})

	It("should recover labels for branch targets", func() {
		words := assemble("top: addi x1, x0, 3\nloop: addi x1, x1, -1\nbne x1, x0, loop\njal x0, top")

		text, err := disassembler.Disassemble(words)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal(
			"L_0000:\n" +
				"    addi   x1, x0, 3\n" +
				"L_0004:\n" +
				"    addi   x1, x1, -1\n" +
				"    bne    x1, x0, L_0004\n" +
				"    jal    x0, L_0000\n"))
	})

	It("should label a target just past the last word", func() {
		words := assemble("beq x0, x0, end\nend:")

		text, err := disassembler.Disassemble(words)
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("    beq    x0, x0, L_0004\nL_0004:\n"))
	})

	It("should keep displacements that leave the program", func() {
		text, err := disassembler.Disassemble([]isa.Word{isa.Word(0x0080006f)})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("    jal    x0, 8\n"))
	})

	DescribeTable("should reassemble targets that have no label",
		func(src, want string) {
			words := assemble(src)

			text, err := disassembler.Disassemble(words)
			Expect(err).NotTo(HaveOccurred())
			Expect(text).To(Equal(want))
			Expect(assemble(text)).To(Equal(words))
		},
		Entry("unaligned branch", "beq x0, x0, 2\nadd x1, x2, x3",
			"    beq    x0, x0, 2\n    add    x1, x2, x3\n"),
		Entry("unaligned jump", "add x1, x2, x3\njal x1, -2",
			"    add    x1, x2, x3\n    jal    x1, -2\n"),
		Entry("branch past the end", "beq x0, x0, 12",
			"    beq    x0, x0, 12\n"),
	)

	It("should mark words outside the instruction set", func() {
		text, err := disassembler.Disassemble([]isa.Word{0x000010b7})
		Expect(err).NotTo(HaveOccurred())
		Expect(text).To(Equal("    # unknown 0x000010b7\n"))
	})

	It("should reassemble to the same words", func() {
		src := `
start:  addi sp, sp, -16
        sw   ra, 12(sp)
        lw   a0, 0(sp)
        slt  t0, a0, a1
        beq  t0, zero, skip
        sub  a0, a0, a1
skip:   or   a2, a0, a1
        and  a3, a2, a0
        srl  a4, a3, a1
        blt  a4, a3, start
        jal  ra, start
        jalr zero, ra, 0
`
		words := assemble(src)
		text, err := disassembler.Disassemble(words)
		Expect(err).NotTo(HaveOccurred())
		Expect(assemble(text)).To(Equal(words))
	})
})

var _ = Describe("ParseText", func() {
	It("should read the assembler's text output", func() {
		words, err := disassembler.ParseText("00000000001100010000000010110011\r\n\n00000000000000001000000001100111\n")
		Expect(err).NotTo(HaveOccurred())
		Expect(words).To(Equal([]isa.Word{0x003100b3, 0x00008067}))
	})

	It("should report the offending line", func() {
		_, err := disassembler.ParseText("00000000001100010000000010110011\n0011\n")
		Expect(err).To(MatchError(ContainSubstring("line 2")))
	})
})
